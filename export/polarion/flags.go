package polarion

import (
	"github.com/urfave/cli/v2"

	"github.com/testout/testout/flags"
)

const (
	ConfigFlagName              = "polarion-config"
	TestCaseOutputFlagName      = "output-polarion-testcase"
	TestRunOutputFlagName       = "output-polarion-testrun"
	ProjectFlagName             = "polarion-project"
	UserFlagName                = "polarion-user"
	TestsURLFlagName            = "polarion-tests-url"
	CreateDefectsFlagName       = "polarion-create-defects"
	DryRunFlagName              = "polarion-dry-run"
	IncludeSkippedFlagName      = "polarion-include-skipped"
	LookupMethodFlagName        = "polarion-lookup-method"
	LookupMethodFieldIDFlagName = "polarion-lookup-method-field-id"
	TestRunIDFlagName           = "polarion-testrun-id"
	TestRunGroupIDFlagName      = "polarion-testrun-group-id"
	TestRunTemplateIDFlagName   = "polarion-testrun-template-id"
	TestRunTitleFlagName        = "polarion-testrun-title"
	TestRunTypeIDFlagName       = "polarion-testrun-type-id"
	ProjectSpanIDsFlagName      = "polarion-project-span-ids"
	TestRunPropertyFlagName     = "polarion-testrun-property"
	TestRunPropertyJSONFlagName = "polarion-testrun-property-json"
)

// Flags is the Polarion exporter's contribution to the option surface.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    ConfigFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_CONFIG"),
		Usage:   "Path to the Polarion configuration file",
	},
	&cli.StringFlag{
		Name:    TestCaseOutputFlagName,
		EnvVars: flags.PrefixEnvVar("OUTPUT_POLARION_TESTCASE"),
		Usage:   "Path to the output Polarion testcase file",
	},
	&cli.StringFlag{
		Name:    TestRunOutputFlagName,
		EnvVars: flags.PrefixEnvVar("OUTPUT_POLARION_TESTRUN"),
		Usage:   "Path to the output Polarion testrun file",
	},
	&cli.StringFlag{
		Name:    ProjectFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_PROJECT"),
		Usage:   "Polarion project ID",
	},
	&cli.StringFlag{
		Name:    UserFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_USER"),
		Usage:   "Polarion user",
	},
	&cli.StringFlag{
		Name:    TestsURLFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_TESTS_URL"),
		Usage:   "Tests URL",
	},
	&cli.BoolFlag{
		Name:    CreateDefectsFlagName,
		Value:   false,
		EnvVars: flags.PrefixEnvVar("POLARION_CREATE_DEFECTS"),
		Usage:   "Make the importer create defects for failed tests (false)",
	},
	&cli.BoolFlag{
		Name:    DryRunFlagName,
		Value:   false,
		EnvVars: flags.PrefixEnvVar("POLARION_DRY_RUN"),
		Usage:   "Indicate to the importer to not make any change (false)",
	},
	&cli.BoolFlag{
		Name:    IncludeSkippedFlagName,
		Value:   true,
		EnvVars: flags.PrefixEnvVar("POLARION_INCLUDE_SKIPPED"),
		Usage:   "The importer will include skipped tests (true)",
	},
	&cli.StringFlag{
		Name:    LookupMethodFlagName,
		Value:   "custom",
		EnvVars: flags.PrefixEnvVar("POLARION_LOOKUP_METHOD"),
		Usage:   "Lookup method used by the importer, 'id' for work item id or 'custom' for custom id (custom)",
	},
	&cli.StringFlag{
		Name:    LookupMethodFieldIDFlagName,
		Value:   "testCaseID",
		EnvVars: flags.PrefixEnvVar("POLARION_LOOKUP_METHOD_FIELD_ID"),
		Usage:   "Field ID used by the importer with the 'custom' lookup method (testCaseID)",
	},
	&cli.StringFlag{
		Name:    TestRunIDFlagName,
		Value:   "test-run-{now}",
		EnvVars: flags.PrefixEnvVar("POLARION_TESTRUN_ID"),
		Usage:   "Polarion test run ID, {now} is replaced with the current timestamp",
	},
	&cli.StringFlag{
		Name:    TestRunGroupIDFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_TESTRUN_GROUP_ID"),
		Usage:   "Polarion test run group ID",
	},
	&cli.StringFlag{
		Name:    TestRunTemplateIDFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_TESTRUN_TEMPLATE_ID"),
		Usage:   "Polarion test run template ID",
	},
	&cli.StringFlag{
		Name:    TestRunTitleFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_TESTRUN_TITLE"),
		Usage:   "Polarion test run title",
	},
	&cli.StringFlag{
		Name:    TestRunTypeIDFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_TESTRUN_TYPE_ID"),
		Usage:   "Polarion test run type ID",
	},
	&cli.StringFlag{
		Name:    ProjectSpanIDsFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_PROJECT_SPAN_IDS"),
		Usage:   "Comma-separated list of project IDs used to set the project span field on the test run",
	},
	&cli.StringSliceFlag{
		Name:    TestRunPropertyFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_TESTRUN_PROPERTY"),
		Usage:   "Custom testrun property in key=value format",
	},
	&cli.StringSliceFlag{
		Name:    TestRunPropertyJSONFlagName,
		EnvVars: flags.PrefixEnvVar("POLARION_TESTRUN_PROPERTY_JSON"),
		Usage:   "Custom testrun property in JSON format {\"key\": \"value\", ...}",
	},
}
