package polarion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/testout/testout/collector"
	"github.com/testout/testout/types"
)

func configureGenerator(t *testing.T, g *Generator, args ...string) error {
	t.Helper()

	var cfgErr error
	app := cli.NewApp()
	app.Flags = g.Flags()
	app.Action = func(cliCtx *cli.Context) error {
		cfgErr = g.Configure(cliCtx)
		return nil
	}
	require.NoError(t, app.Run(append([]string{"test"}, args...)))

	return cfgErr
}

func runCollection(t *testing.T, mode collector.Mode) *collector.Collection {
	t.Helper()

	data := collector.New(mode, nil)

	line := 10
	passed := &types.ItemRecord{
		ID:     "test_module.py::test_pass",
		Name:   "test_pass",
		Module: "test_module.py",
		Location: types.Location{
			File: "test_module.py",
			Line: &line,
			Name: "test_pass",
		},
		Description: "Passing test.",
		Meta: map[string]string{
			"title":           "A passing test",
			"component":       "storage",
			"requirement":     "REQ-1",
			"steps":           "1. start\n2. check",
			"expectedresults": "1. started\n2. checked",
		},
		Result: &types.Result{
			Outcome:  types.OutcomePassed,
			Duration: 1.25,
			Stdout:   "all good",
		},
	}

	failed := &types.ItemRecord{
		ID:     "test_module.py::test_fail",
		Name:   "test_fail",
		Class:  "TestSuite",
		Module: "test_module.py",
		Location: types.Location{
			File: "test_module.py",
			Name: "TestSuite.test_fail",
		},
		Meta: map[string]string{"component": "storage"},
		Result: &types.Result{
			Outcome:  types.OutcomeFailed,
			Duration: 0.5,
			Summary:  "assert False",
			Message:  "Traceback:\nassert False",
		},
	}

	require.NoError(t, data.Add(passed))
	require.NoError(t, data.Add(failed))

	return data
}

const testSchema = `
project: TESTPROJ
user: tester
testcase:
  optional:
    component:
    steps:
    expectedresults:
    title:
    requirement:
  properties:
    import-looper: false
`

func TestConfigureRequiresSchema(t *testing.T) {
	t.Run("output without schema file", func(t *testing.T) {
		g := New(nil)
		err := configureGenerator(t, g, "--"+TestCaseOutputFlagName, "out.xml")
		require.Error(t, err)
		assert.True(t, types.IsConfigurationError(err))
		assert.Contains(t, err.Error(), ConfigFlagName)
	})

	t.Run("no output and no schema is fine", func(t *testing.T) {
		g := New(nil)
		require.NoError(t, configureGenerator(t, g))
	})
}

func TestGenerateSkipsWhenUnconfigured(t *testing.T) {
	g := New(nil)
	require.NoError(t, configureGenerator(t, g))
	require.NoError(t, g.Generate(context.Background(), runCollection(t, collector.ModeRun)))
}

func TestGenerateTestCaseDocument(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, testSchema)
	testcasePath := filepath.Join(dir, "testcase.xml")

	g := New(nil)
	require.NoError(t, configureGenerator(t, g,
		"--"+ConfigFlagName, schema,
		"--"+TestCaseOutputFlagName, testcasePath,
	))
	require.NoError(t, g.Generate(context.Background(), runCollection(t, collector.ModeRun)))

	raw, err := os.ReadFile(testcasePath)
	require.NoError(t, err)
	out := string(raw)

	assert.Contains(t, out, `<testcases project-id="TESTPROJ">`)
	assert.Contains(t, out, `<property name="lookup-method" value="custom">`)
	assert.Contains(t, out, `<property name="polarion-custom-lookup-method-field-id" value="testCaseID">`)
	assert.Contains(t, out, `<property name="import-looper" value="false">`)

	assert.Contains(t, out, `<testcase id="test_module.py::test_pass" status-id="approved">`)
	assert.Contains(t, out, `<title>A passing test</title>`)
	assert.Contains(t, out, `<test-step-column id="step">start</test-step-column>`)
	assert.Contains(t, out, `<test-step-column id="expectedResult">started</test-step-column>`)
	assert.Contains(t, out, `<custom-field id="component" content="storage">`)
	assert.Contains(t, out, `<linked-work-item workitem-id="REQ-1" role-id="verifies" lookup-method="name">`)

	assert.NotContains(t, out, `custom-field id="title"`)
	assert.NotContains(t, out, `custom-field id="steps"`)
	assert.NotContains(t, out, `custom-field id="requirement"`)
}

func TestGenerateTestRunDocument(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, testSchema)
	testrunPath := filepath.Join(dir, "testrun.xml")

	g := New(nil)
	require.NoError(t, configureGenerator(t, g,
		"--"+ConfigFlagName, schema,
		"--"+TestRunOutputFlagName, testrunPath,
		"--"+TestRunIDFlagName, "nightly-1",
		"--"+TestRunPropertyFlagName, "arch=x86_64",
	))
	require.NoError(t, g.Generate(context.Background(), runCollection(t, collector.ModeRun)))

	raw, err := os.ReadFile(testrunPath)
	require.NoError(t, err)
	out := string(raw)

	assert.Contains(t, out, `errors="0" failures="1" skipped="0" tests="2" time="1.75"`)
	assert.Contains(t, out, `<property name="polarion-project-id" value="TESTPROJ">`)
	assert.Contains(t, out, `<property name="polarion-user-id" value="tester">`)
	assert.Contains(t, out, `<property name="polarion-testrun-id" value="nightly-1">`)
	assert.Contains(t, out, `<property name="polarion-testrun-status-id" value="finished">`)
	assert.Contains(t, out, `<property name="arch" value="x86_64">`)
	assert.NotContains(t, out, "polarion-group-id", "unset options are omitted")

	assert.Contains(t, out, `file="test_module.py" line="10" name="test_pass" time="1.25"`)
	assert.Contains(t, out, `classname="TestSuite"`)
	assert.Contains(t, out, `<system-out>all good</system-out>`)
	assert.Contains(t, out, `<failure message="assert False">Traceback:`)
	assert.Contains(t, out, `<property name="polarion-testcase-id" value="test_module.py::test_pass">`)
}

func TestGenerateTestRunRequiresResults(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, testSchema)
	testrunPath := filepath.Join(dir, "testrun.xml")

	data := collector.New(collector.ModeRun, nil)
	require.NoError(t, data.Add(&types.ItemRecord{ID: "test_module.py::test_pending"}))

	g := New(nil)
	require.NoError(t, configureGenerator(t, g,
		"--"+ConfigFlagName, schema,
		"--"+TestRunOutputFlagName, testrunPath,
	))

	err := g.Generate(context.Background(), data)
	require.Error(t, err)
	assert.True(t, types.IsValidationError(err))
	assert.Contains(t, err.Error(), "result is not available for test_module.py::test_pending")
}

func TestGenerateSkipsTestRunInCollectMode(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, testSchema)
	testcasePath := filepath.Join(dir, "testcase.xml")
	testrunPath := filepath.Join(dir, "testrun.xml")

	data := collector.New(collector.ModeCollect, nil)
	require.NoError(t, data.Add(&types.ItemRecord{ID: "test_module.py::test_pending"}))

	g := New(nil)
	require.NoError(t, configureGenerator(t, g,
		"--"+ConfigFlagName, schema,
		"--"+TestCaseOutputFlagName, testcasePath,
		"--"+TestRunOutputFlagName, testrunPath,
	))
	require.NoError(t, g.Generate(context.Background(), data))

	assert.FileExists(t, testcasePath)
	assert.NoFileExists(t, testrunPath)
}

func TestTestCaseFallbacks(t *testing.T) {
	cfg := &Config{}
	item := &types.ItemRecord{
		ID:          "test_module.py::test_min",
		Description: "Minimal test.",
	}

	tc, err := NewTestCase(cfg, item)
	require.NoError(t, err)

	assert.Equal(t, "test_module.py::test_min", tc.ID())
	assert.Equal(t, "test_module.py::test_min", tc.Title())
	assert.Equal(t, "approved", tc.Status())
	assert.Empty(t, tc.Steps())
	assert.Equal(t, "<pre>Minimal test.</pre>", tc.Description())
}

func TestTestCaseDescription(t *testing.T) {
	cfg := &Config{}
	item := &types.ItemRecord{
		ID:          "test_module.py::test_params",
		Description: "Parametrized test.",
		Params: []types.Param{
			{Name: "backend", Value: "nfs"},
			{Name: "size", Value: "10"},
		},
	}
	item.SetExtra("versions", "server", "1.2.3")

	tc, err := NewTestCase(cfg, item)
	require.NoError(t, err)

	assert.Equal(t,
		"<div><strong>Parametrized arguments:</strong><ul>"+
			"<li><strong>backend</strong>: nfs</li>"+
			"<li><strong>size</strong>: 10</li>"+
			"</ul></div>"+
			"<pre>server: 1.2.3\n\nParametrized test.</pre>",
		tc.Description())
}
