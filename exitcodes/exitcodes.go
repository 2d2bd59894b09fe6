// Package exitcodes defines the standard exit codes used by testout.
package exitcodes

// Exit code constants used by testout
// These constants define the exit codes that the binary uses to indicate
// various states when it exits:
//
// * Success (0): Used when all requested outputs were generated
// * ValidationErr (1): Used when an item failed schema validation
// * ConfigurationErr (2): Used for configuration errors such as missing or malformed files
const (
	Success          = 0 // All requested outputs generated
	ValidationErr    = 1 // Schema validation failures
	ConfigurationErr = 2 // Configuration errors
)
