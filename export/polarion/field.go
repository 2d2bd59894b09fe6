package polarion

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/testout/testout/types"
)

// singleLineFields collapse to one line unless the schema says otherwise;
// every other field keeps its line breaks by default.
var singleLineFields = map[string]bool{
	"title": true,
}

// templateContext is the data available to default value templates.
type templateContext struct {
	Item     *types.ItemRecord
	TestsURL string
}

// Fields maps resolved field names to their effective values for one item.
// Absent fields have no entry; present-but-empty values do.
type Fields map[string]string

// ResolveFields resolves the section's required and optional definitions
// against one item. Optional definitions override required ones on name
// collision. A missing required field fails resolution. Resolution happens
// once per item per export, nothing is cached across items.
func ResolveFields(cfg *Config, section SectionConfig, item *types.ItemRecord) (Fields, error) {
	defs := make(map[string]*FieldDef, len(section.Required)+len(section.Optional))
	for name, def := range section.Required {
		defs[name] = def
	}
	for name, def := range section.Optional {
		defs[name] = def
	}

	fields := make(Fields)
	for _, name := range sortedKeys(defs) {
		value, present, err := resolveField(cfg, name, defs[name], item)
		if err != nil {
			return nil, err
		}
		if present {
			fields[name] = value
		}
	}

	for _, name := range sortedKeys(section.Required) {
		if _, ok := fields[name]; !ok {
			return nil, types.NewValidationError("required field %q is missing for %q", name, item.ID)
		}
	}

	return fields, nil
}

// resolveField resolves a single field value: metadata lookup, default
// template, single-line collapse, transform, validation, boolean
// normalization and format hint, in that order.
func resolveField(cfg *Config, name string, def *FieldDef, item *types.ItemRecord) (string, bool, error) {
	if def == nil {
		def = &FieldDef{}
	}

	metaKey := def.Meta
	if metaKey == "" {
		metaKey = name
	}

	multiline := !singleLineFields[name]
	if def.Multiline != nil {
		multiline = *def.Multiline
	}

	value, present := item.Meta[metaKey]
	if !present {
		if def.Default == nil {
			return "", false, nil
		}

		rendered, err := renderDefault(cfg, name, *def.Default, item)
		if err != nil {
			return "", false, err
		}
		value = rendered
	}

	if !multiline {
		value = collapseLines(value)
	}

	if def.Transform != nil && def.Transform.Pattern != "" {
		transformed, err := applyTransform(name, def.Transform, value)
		if err != nil {
			return "", false, err
		}
		value = transformed
	}

	if def.Validate != "" {
		pattern, err := compileAnchored(def.Validate)
		if err != nil {
			return "", false, types.NewConfigurationError(
				fmt.Errorf("invalid validation pattern for field %q: %w", name, err))
		}
		if !pattern.MatchString(value) {
			return "", false, types.NewValidationError(
				"field %q did not validate with %q for %q", name, def.Validate, item.ID)
		}
	}

	if lower := strings.ToLower(value); lower == "true" || lower == "false" {
		value = lower
	}

	if def.Format == "pre" {
		value = fmt.Sprintf("<pre>%s</pre>", value)
	}

	return value, true, nil
}

func renderDefault(cfg *Config, name, text string, item *types.ItemRecord) (string, error) {
	tpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", types.NewConfigurationError(fmt.Errorf("invalid default template for field %q: %w", name, err))
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, templateContext{Item: item, TestsURL: cfg.TestsURL}); err != nil {
		return "", types.NewConfigurationError(fmt.Errorf("failed to render default for field %q: %w", name, err))
	}

	return buf.String(), nil
}

// applyTransform substitutes the transform pattern unless the guard
// pattern matches the start of the current value.
func applyTransform(name string, transform *TransformDef, value string) (string, error) {
	if transform.Unless != "" {
		guard, err := compileAnchored(transform.Unless)
		if err != nil {
			return "", types.NewConfigurationError(
				fmt.Errorf("invalid transform guard for field %q: %w", name, err))
		}
		if guard.MatchString(value) {
			return value, nil
		}
	}

	pattern, err := regexp.Compile(transform.Pattern)
	if err != nil {
		return "", types.NewConfigurationError(
			fmt.Errorf("invalid transform pattern for field %q: %w", name, err))
	}

	return pattern.ReplaceAllString(value, transform.Replace), nil
}

// collapseLines joins a multi-line value into one line, trimming each line.
func collapseLines(value string) string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, " ")
}

// compileAnchored compiles a pattern that must match at the start of the
// value.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + pattern + ")")
}
