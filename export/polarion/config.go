package polarion

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/testout/testout/types"
)

// TransformDef is an optional regex substitution applied to a resolved
// field value. When Unless matches the start of the value the substitution
// is skipped.
type TransformDef struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
	Unless  string `yaml:"unless"`
}

// FieldDef is one field definition from the schema file. A nil definition
// in the schema is equivalent to an empty one.
type FieldDef struct {
	Meta      string        `yaml:"meta"`      // source metadata key, defaults to the field name
	Multiline *bool         `yaml:"multiline"` // nil picks the per-field default
	Validate  string        `yaml:"validate"`  // anchored validation pattern
	Transform *TransformDef `yaml:"transform"`
	Format    string        `yaml:"format"`  // output format hint, "pre" wraps in a preformatted marker
	Default   *string       `yaml:"default"` // template rendered with the item and tests url, nil means no default
}

// SectionConfig mirrors the testcase/testrun sub-documents of the schema
// file.
type SectionConfig struct {
	Required   map[string]*FieldDef `yaml:"required"`
	Optional   map[string]*FieldDef `yaml:"optional"`
	Properties map[string]any       `yaml:"properties"`
}

type fileConfig struct {
	Project  string        `yaml:"project"`
	User     string        `yaml:"user"`
	TestsURL string        `yaml:"tests_url"`
	Testcase SectionConfig `yaml:"testcase"`
	Testrun  SectionConfig `yaml:"testrun"`
}

// Config is the effective Polarion exporter configuration, merged from the
// schema file and the CLI surface. CLI values take precedence for the
// project/user/tests-url triple only when set; the remaining options are
// CLI-only.
type Config struct {
	Project  string
	User     string
	TestsURL string
	Testcase SectionConfig
	Testrun  SectionConfig

	CreateDefects       bool
	DryRun              bool
	IncludeSkipped      bool
	LookupMethod        string
	LookupMethodFieldID string
	ProjectSpanIDs      string // empty means unset
	TestRunID           string // sanitized, {now} already substituted
	TestRunGroupID      string
	TestRunTemplateID   string
	TestRunTitle        string
	TestRunTypeID       string
	TestRunProperties   map[string]any
}

// unsafeRunIDChars are stripped from the test run id, they are not accepted
// by the import target or the filesystem.
var unsafeRunIDChars = regexp.MustCompile("[\\\\/.:\"<>|~!@#$?%^&'*()+`,=]")

// NewConfig loads the schema file and merges the CLI options into it.
func NewConfig(cliCtx *cli.Context, path string) (*Config, error) {
	file, err := loadFileConfig(path)
	if err != nil {
		return nil, err
	}

	lookupMethod := cliCtx.String(LookupMethodFlagName)
	if lookupMethod != "id" && lookupMethod != "custom" {
		return nil, types.NewConfigurationError(
			fmt.Errorf("invalid lookup method %q, expected \"id\" or \"custom\"", lookupMethod))
	}

	properties, err := parseKeyValueProperties(cliCtx.StringSlice(TestRunPropertyFlagName))
	if err != nil {
		return nil, err
	}
	jsonProperties, err := parseJSONProperties(cliCtx.StringSlice(TestRunPropertyJSONFlagName))
	if err != nil {
		return nil, err
	}
	for key, value := range jsonProperties {
		properties[key] = value
	}

	cfg := &Config{
		Project:  stringWithFallback(cliCtx.String(ProjectFlagName), file.Project, "not-set"),
		User:     stringWithFallback(cliCtx.String(UserFlagName), file.User, "not-set"),
		TestsURL: stringWithFallback(cliCtx.String(TestsURLFlagName), file.TestsURL, ""),
		Testcase: file.Testcase,
		Testrun:  file.Testrun,

		CreateDefects:       cliCtx.Bool(CreateDefectsFlagName),
		DryRun:              cliCtx.Bool(DryRunFlagName),
		IncludeSkipped:      cliCtx.Bool(IncludeSkippedFlagName),
		LookupMethod:        lookupMethod,
		LookupMethodFieldID: cliCtx.String(LookupMethodFieldIDFlagName),
		ProjectSpanIDs:      cliCtx.String(ProjectSpanIDsFlagName),
		TestRunID:           sanitizeTestRunID(cliCtx.String(TestRunIDFlagName)),
		TestRunGroupID:      cliCtx.String(TestRunGroupIDFlagName),
		TestRunTemplateID:   cliCtx.String(TestRunTemplateIDFlagName),
		TestRunTitle:        cliCtx.String(TestRunTitleFlagName),
		TestRunTypeID:       cliCtx.String(TestRunTypeIDFlagName),
		TestRunProperties:   properties,
	}

	return cfg, nil
}

func loadFileConfig(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewConfigurationError(fmt.Errorf("unable to open polarion configuration %q: %w", path, err))
	}

	// An empty schema file is valid, every section simply stays empty.
	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, types.NewConfigurationError(fmt.Errorf("unable to parse polarion configuration %q: %w", path, err))
	}

	return &file, nil
}

// sanitizeTestRunID substitutes the {now} placeholder with the current unix
// timestamp and strips unsafe characters.
func sanitizeTestRunID(id string) string {
	id = strings.ReplaceAll(id, "{now}", strconv.FormatInt(time.Now().Unix(), 10))
	return unsafeRunIDChars.ReplaceAllString(id, "")
}

// stringWithFallback prefers the CLI value, then the file value, then the
// default.
func stringWithFallback(cli, file, fallback string) string {
	if cli != "" {
		return cli
	}
	if file != "" {
		return file
	}
	return fallback
}

// parseKeyValueProperties parses repeatable key=value property flags.
func parseKeyValueProperties(pairs []string) (map[string]any, error) {
	properties := make(map[string]any)
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, types.NewConfigurationError(
				fmt.Errorf("expected key=value in --%s, got %q", TestRunPropertyFlagName, pair))
		}
		properties[key] = value
	}
	return properties, nil
}

// parseJSONProperties parses repeatable JSON property flags. Only scalar
// values are accepted.
func parseJSONProperties(items []string) (map[string]any, error) {
	properties := make(map[string]any)
	for _, item := range items {
		var data map[string]any
		if err := json.Unmarshal([]byte(item), &data); err != nil {
			return nil, types.NewConfigurationError(
				fmt.Errorf("invalid JSON format in --%s: %w", TestRunPropertyJSONFlagName, err))
		}

		for key, value := range data {
			switch value.(type) {
			case string, bool, float64:
				properties[key] = value
			default:
				return nil, types.NewConfigurationError(
					fmt.Errorf("expected scalar value for %s in --%s, got %v", key, TestRunPropertyJSONFlagName, value))
			}
		}
	}
	return properties, nil
}
