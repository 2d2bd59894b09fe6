package polarion

import (
	"strconv"

	"github.com/testout/testout/collector"
	"github.com/testout/testout/types"
)

// buildTestRun renders the whole collection as a test run document: one
// suite with aggregated outcome counts and one entry per item, each
// carrying a back-reference to its test case id.
func buildTestRun(cfg *Config, data *collector.Collection) (*testSuitesDoc, error) {
	counts := make(map[types.Outcome]int)
	var duration float64

	suite := testSuiteXML{}
	for _, item := range data.Items() {
		if item.Result == nil {
			return nil, types.NewValidationError("result is not available for %s", item.ID)
		}

		tc, err := NewTestCase(cfg, item)
		if err != nil {
			return nil, err
		}

		counts[item.Result.Outcome]++
		duration += item.Result.Duration

		suite.Cases = append(suite.Cases, runCase(item, tc))
	}

	suite.Errors = counts[types.OutcomeError]
	suite.Failures = counts[types.OutcomeFailed]
	suite.Skipped = counts[types.OutcomeSkipped]
	suite.Tests = data.Len()
	suite.Time = formatSeconds(duration)

	return &testSuitesDoc{
		Properties: runProperties(cfg).xml(),
		Suite:      suite,
	}, nil
}

func runCase(item *types.ItemRecord, tc *TestCase) runCaseXML {
	result := item.Result

	line := ""
	if item.Location.Line != nil {
		line = strconv.Itoa(*item.Location.Line)
	}

	doc := runCaseXML{
		File:      item.Location.File,
		Line:      line,
		Name:      item.Name,
		Time:      formatSeconds(result.Duration),
		ClassName: item.Class,
	}

	if result.Stdout != "" {
		doc.SystemOut = &textXML{Text: result.Stdout}
	}
	if result.Stderr != "" {
		doc.SystemErr = &textXML{Text: result.Stderr}
	}

	outcome := &outcomeXML{Message: result.Summary, Text: result.Message}
	switch result.Outcome {
	case types.OutcomeSkipped:
		doc.Skipped = outcome
	case types.OutcomeFailed:
		doc.Failure = outcome
	case types.OutcomeError:
		doc.Error = outcome
	}

	doc.Properties = propertySet{"polarion-testcase-id": tc.ID()}.xml()

	return doc
}

func runProperties(cfg *Config) propertySet {
	properties := propertySet{
		"polarion-create-defects":      cfg.CreateDefects,
		"polarion-dry-run":             cfg.DryRun,
		"polarion-group-id":            optProperty(cfg.TestRunGroupID),
		"polarion-include-skipped":     cfg.IncludeSkipped,
		"polarion-project-id":          cfg.Project,
		"polarion-project-span-ids":    optProperty(cfg.ProjectSpanIDs),
		"polarion-testrun-id":          cfg.TestRunID,
		"polarion-testrun-status-id":   "finished",
		"polarion-testrun-template-id": optProperty(cfg.TestRunTemplateID),
		"polarion-testrun-title":       optProperty(cfg.TestRunTitle),
		"polarion-testrun-type-id":     optProperty(cfg.TestRunTypeID),
		"polarion-user-id":             cfg.User,
		"polarion-lookup-method":       cfg.LookupMethod,
	}
	if cfg.LookupMethod == "custom" {
		properties["polarion-custom-lookup-method-field-id"] = cfg.LookupMethodFieldID
	}

	properties.merge(cfg.Testrun.Properties)
	properties.merge(cfg.TestRunProperties)

	return properties
}
