package types

// Location identifies where an item is defined in the test tree.
type Location struct {
	File string
	Line *int // nil when the host could not determine a line
	Name string
}

// Marker is a host framework marker attached to an item.
type Marker struct {
	Name   string
	Args   []any
	Kwargs map[string]any
}

// Param is one parametrization argument of an item.
type Param struct {
	Name  string
	Value string
}

// ItemRecord is the canonical representation of one collected test item.
// It is created once at collection time, updated with phase results during
// execution and treated as immutable after the session finishes. The
// collector owns all records.
type ItemRecord struct {
	// Identity
	ID   string // stable item id, unique within a session
	Name string // display name

	// Containment
	Package string // enclosing package, empty when the item is not inside one
	Module  string
	Class   string // empty for module-level functions

	Location Location

	// Documentation, outermost scope first. Description is the item's own
	// documentation text only.
	Description string
	Docstrings  []string

	// Meta holds the merged `:field: value` annotations; the innermost
	// scope wins for duplicate keys.
	Meta map[string]string

	Markers []Marker
	Params  []Param

	// Result is set during execution, nil in collect-only mode.
	Result *Result

	// Extra holds collaborator-contributed data, keyed by namespace.
	Extra map[string]map[string]string
}

// SetExtra records a collaborator-contributed value under the given namespace.
func (i *ItemRecord) SetExtra(namespace, key, value string) {
	if i.Extra == nil {
		i.Extra = make(map[string]map[string]string)
	}
	if i.Extra[namespace] == nil {
		i.Extra[namespace] = make(map[string]string)
	}
	i.Extra[namespace][key] = value
}

// Parametrized reports whether the item was created by parametrization.
func (i *ItemRecord) Parametrized() bool {
	return len(i.Params) > 0
}
