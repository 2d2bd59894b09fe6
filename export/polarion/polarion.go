// Package polarion renders collected items into the Polarion importer's
// test case and test run XML documents. Field values are resolved against
// a configurable schema with defaults, validation and transformation.
package polarion

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/testout/testout/collector"
	"github.com/testout/testout/types"
)

// Generator writes the test case and test run import documents.
type Generator struct {
	log log.Logger

	cfg          *Config
	testcasePath string
	testrunPath  string
}

// New creates a Polarion generator.
func New(logger log.Logger) *Generator {
	if logger == nil {
		logger = log.New()
	}
	return &Generator{log: logger}
}

func (g *Generator) Name() string {
	return "polarion"
}

func (g *Generator) Flags() []cli.Flag {
	return Flags
}

// Configure reads the output paths and, when any is set, loads the schema
// file. Requesting output without a schema file is a configuration error.
func (g *Generator) Configure(cliCtx *cli.Context) error {
	g.testcasePath = cliCtx.String(TestCaseOutputFlagName)
	g.testrunPath = cliCtx.String(TestRunOutputFlagName)

	configPath := cliCtx.String(ConfigFlagName)
	if configPath == "" {
		if g.testcasePath != "" || g.testrunPath != "" {
			return types.NewConfigurationError(fmt.Errorf(
				"polarion output was requested but no configuration file was given, use --%s", ConfigFlagName))
		}
		return nil
	}

	cfg, err := NewConfig(cliCtx, configPath)
	if err != nil {
		return err
	}
	g.cfg = cfg

	return nil
}

func (g *Generator) Generate(_ context.Context, data *collector.Collection) error {
	if g.cfg == nil {
		g.log.Debug("Polarion exporter not configured, skipping")
		return nil
	}

	if g.testcasePath != "" {
		doc, err := buildTestCases(g.cfg, data)
		if err != nil {
			return err
		}
		if err := writeXML(g.testcasePath, doc); err != nil {
			return err
		}
		g.log.Debug("Wrote Polarion testcase document", "path", g.testcasePath, "testcases", len(doc.TestCases))
	}

	if g.testrunPath != "" && data.Mode() == collector.ModeRun {
		doc, err := buildTestRun(g.cfg, data)
		if err != nil {
			return err
		}
		if err := writeXML(g.testrunPath, doc); err != nil {
			return err
		}
		g.log.Debug("Wrote Polarion testrun document", "path", g.testrunPath, "tests", doc.Suite.Tests)
	}

	return nil
}
