package polarion

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"
	"strconv"
)

type propertyXML struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type propertiesXML struct {
	Properties []propertyXML `xml:"property"`
}

type testStepColumnXML struct {
	ID   string `xml:"id,attr"`
	Text string `xml:",chardata"`
}

type testStepXML struct {
	Columns []testStepColumnXML `xml:"test-step-column"`
}

type testStepsXML struct {
	Steps []testStepXML `xml:"test-step"`
}

type customFieldXML struct {
	ID      string `xml:"id,attr"`
	Content string `xml:"content,attr"`
}

type customFieldsXML struct {
	Fields []customFieldXML `xml:"custom-field"`
}

type linkedWorkItemXML struct {
	WorkItemID   string `xml:"workitem-id,attr"`
	RoleID       string `xml:"role-id,attr"`
	LookupMethod string `xml:"lookup-method,attr"`
}

type linkedWorkItemsXML struct {
	Items []linkedWorkItemXML `xml:"linked-work-item"`
}

type testCaseXML struct {
	ID              string             `xml:"id,attr"`
	Status          string             `xml:"status-id,attr"`
	Title           string             `xml:"title"`
	Description     string             `xml:"description"`
	Steps           testStepsXML       `xml:"test-steps"`
	CustomFields    customFieldsXML    `xml:"custom-fields"`
	LinkedWorkItems linkedWorkItemsXML `xml:"linked-work-items"`
}

type testCasesDoc struct {
	XMLName    xml.Name      `xml:"testcases"`
	ProjectID  string        `xml:"project-id,attr"`
	Properties propertiesXML `xml:"properties"`
	TestCases  []testCaseXML `xml:"testcase"`
}

type textXML struct {
	Text string `xml:",chardata"`
}

type outcomeXML struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

type runCaseXML struct {
	File       string        `xml:"file,attr"`
	Line       string        `xml:"line,attr"`
	Name       string        `xml:"name,attr"`
	Time       string        `xml:"time,attr"`
	ClassName  string        `xml:"classname,attr,omitempty"`
	SystemOut  *textXML      `xml:"system-out"`
	SystemErr  *textXML      `xml:"system-err"`
	Skipped    *outcomeXML   `xml:"skipped"`
	Failure    *outcomeXML   `xml:"failure"`
	Error      *outcomeXML   `xml:"error"`
	Properties propertiesXML `xml:"properties"`
}

type testSuiteXML struct {
	Errors   int          `xml:"errors,attr"`
	Failures int          `xml:"failures,attr"`
	Skipped  int          `xml:"skipped,attr"`
	Tests    int          `xml:"tests,attr"`
	Time     string       `xml:"time,attr"`
	Cases    []runCaseXML `xml:"testcase"`
}

type testSuitesDoc struct {
	XMLName    xml.Name      `xml:"testsuites"`
	Properties propertiesXML `xml:"properties"`
	Suite      testSuiteXML  `xml:"testsuite"`
}

// propertySet is a name/value property collection. It is emitted sorted by
// name; nil values are skipped and booleans are lowercased.
type propertySet map[string]any

func (p propertySet) merge(other map[string]any) {
	for name, value := range other {
		p[name] = value
	}
}

func (p propertySet) xml() propertiesXML {
	var props []propertyXML
	for _, name := range sortedKeys(p) {
		if p[name] == nil {
			continue
		}
		props = append(props, propertyXML{Name: name, Value: stringifyProperty(p[name])})
	}
	return propertiesXML{Properties: props}
}

func stringifyProperty(value any) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// optProperty returns nil for an empty string so unset options disappear
// from the emitted properties.
func optProperty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'g', -1, 64)
}

// writeXML writes the document with an XML declaration and two-space
// indentation.
func writeXML(path string, doc any) error {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	payload := append([]byte(xml.Header), out...)
	payload = append(payload, '\n')

	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
