package polarion

import (
	"fmt"
	"strings"

	"github.com/testout/testout/collector"
	"github.com/testout/testout/types"
)

// reservedFieldNames are emitted through dedicated elements, never as
// custom fields.
var reservedFieldNames = map[string]bool{
	"id":              true,
	"title":           true,
	"steps":           true,
	"expectedresults": true,
	"status":          true,
	"requirement":     true,
}

// TestCase is one item resolved against the testcase schema.
type TestCase struct {
	cfg    *Config
	item   *types.ItemRecord
	fields Fields
	steps  []StepPair
}

// NewTestCase resolves the testcase fields and step pairs for one item.
func NewTestCase(cfg *Config, item *types.ItemRecord) (*TestCase, error) {
	tc := &TestCase{cfg: cfg, item: item}

	fields, err := ResolveFields(cfg, cfg.Testcase, item)
	if err != nil {
		return nil, err
	}
	tc.fields = fields

	steps, err := PairSteps(tc.ID(), fields["steps"], fields["expectedresults"])
	if err != nil {
		return nil, err
	}
	tc.steps = steps

	return tc, nil
}

// ID returns the resolved id field, falling back to the item id.
func (tc *TestCase) ID() string {
	if value, ok := tc.fields["id"]; ok {
		return value
	}
	return tc.item.ID
}

// Title returns the resolved title field, falling back to the item id.
func (tc *TestCase) Title() string {
	if value, ok := tc.fields["title"]; ok {
		return value
	}
	return tc.item.ID
}

// Status returns the resolved status field, falling back to "approved".
func (tc *TestCase) Status() string {
	if value, ok := tc.fields["status"]; ok {
		return value
	}
	return "approved"
}

// Description combines the parametrization summary, collaborator extras
// and the item's own documentation into a preformatted block.
func (tc *TestCase) Description() string {
	var extra strings.Builder
	for _, namespace := range sortedKeys(tc.item.Extra) {
		values := tc.item.Extra[namespace]
		for _, key := range sortedKeys(values) {
			fmt.Fprintf(&extra, "%s: %s\n", key, values[key])
		}
	}

	text := extra.String()
	if text != "" {
		text += "\n"
	}

	return fmt.Sprintf("%s<pre>%s%s</pre>", tc.parametrization(), text, tc.item.Description)
}

// Steps returns the resolved step pairs.
func (tc *TestCase) Steps() []StepPair {
	return tc.steps
}

// parametrization renders the auto-generated summary block for
// parametrized items.
func (tc *TestCase) parametrization() string {
	if !tc.item.Parametrized() {
		return ""
	}

	var b strings.Builder
	b.WriteString("<div><strong>Parametrized arguments:</strong><ul>")
	for _, param := range tc.item.Params {
		fmt.Fprintf(&b, "<li><strong>%s</strong>: %s</li>", param.Name, param.Value)
	}
	b.WriteString("</ul></div>")

	return b.String()
}

func (tc *TestCase) xml() testCaseXML {
	doc := testCaseXML{
		ID:          tc.ID(),
		Status:      tc.Status(),
		Title:       tc.Title(),
		Description: tc.Description(),
	}

	for _, pair := range tc.steps {
		doc.Steps.Steps = append(doc.Steps.Steps, testStepXML{
			Columns: []testStepColumnXML{
				{ID: "step", Text: pair.Step},
				{ID: "expectedResult", Text: pair.Result},
			},
		})
	}

	for _, name := range sortedKeys(tc.fields) {
		if reservedFieldNames[name] {
			continue
		}
		doc.CustomFields.Fields = append(doc.CustomFields.Fields, customFieldXML{
			ID:      name,
			Content: tc.fields[name],
		})
	}

	if requirement, ok := tc.fields["requirement"]; ok && requirement != "" {
		doc.LinkedWorkItems.Items = append(doc.LinkedWorkItems.Items, linkedWorkItemXML{
			WorkItemID:   requirement,
			RoleID:       "verifies",
			LookupMethod: "name",
		})
	}

	return doc
}

// buildTestCases renders the whole collection as a test case definition
// document.
func buildTestCases(cfg *Config, data *collector.Collection) (*testCasesDoc, error) {
	properties := propertySet{
		"dry-run":       cfg.DryRun,
		"lookup-method": cfg.LookupMethod,
	}
	if cfg.LookupMethod == "custom" {
		properties["polarion-custom-lookup-method-field-id"] = cfg.LookupMethodFieldID
	}
	properties.merge(cfg.Testcase.Properties)

	doc := &testCasesDoc{
		ProjectID:  cfg.Project,
		Properties: properties.xml(),
	}

	for _, item := range data.Items() {
		tc, err := NewTestCase(cfg, item)
		if err != nil {
			return nil, err
		}
		doc.TestCases = append(doc.TestCases, tc.xml())
	}

	return doc, nil
}
