package docmeta

import (
	"regexp"
	"strings"
)

// fieldMarker matches the start of a `:field: value` annotation line.
var fieldMarker = regexp.MustCompile(`^:([^:]+):(.*)$`)

// ParseBlock extracts `:field: value` annotations from one documentation
// text. A field value is the remainder of the marker line plus all
// following lines up to the next marker or a blank line, dedented and
// trimmed. A field present with an empty value stays in the result, so
// presence is distinguishable from absence.
func ParseBlock(text string) map[string]string {
	meta := make(map[string]string)

	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		m := fieldMarker.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		value := []string{m[2]}
		for i+1 < len(lines) {
			next := lines[i+1]
			if strings.TrimSpace(next) == "" || fieldMarker.MatchString(next) {
				break
			}
			value = append(value, next)
			i++
		}

		meta[strings.TrimSpace(m[1])] = Normalize(strings.Join(value, "\n"))
	}

	return meta
}

// Merge parses each text in order and merges the results. Later texts
// overwrite earlier ones on identical field names, so passing texts
// outermost scope first makes the innermost scope win.
func Merge(texts []string) map[string]string {
	meta := make(map[string]string)
	for _, text := range texts {
		for key, value := range ParseBlock(text) {
			meta[key] = value
		}
	}

	return meta
}
