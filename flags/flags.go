package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "TESTOUT"

// PrefixEnvVar prefixes the environment variable with EnvVarPrefix.
func PrefixEnvVar(name string) []string {
	return []string{fmt.Sprintf("%s_%s", EnvVarPrefix, name)}
}

var (
	InputDump = &cli.StringFlag{
		Name:     "input",
		Value:    "",
		Required: true,
		EnvVars:  PrefixEnvVar("INPUT"),
		Usage:    "Path to a structured dump file to replay through the exporters",
	}
)

var requiredFlags = []cli.Flag{
	InputDump,
}

// Flags contains the core flags of the standalone binary. Exporter flags
// are contributed by each exporter.
var Flags []cli.Flag

func init() {
	Flags = append(Flags, requiredFlags...)
}

// CheckRequired verifies that all required core flags are set.
func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
