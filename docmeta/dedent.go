package docmeta

import "strings"

// Dedent removes the longest common leading whitespace from all non-blank
// lines of text. Blank lines are ignored when computing the margin and are
// preserved in the output.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	margin := ""
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			margin = indent
			found = true
			continue
		}

		margin = commonPrefix(margin, indent)
	}

	if margin == "" {
		return text
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = line
			continue
		}
		out[i] = strings.TrimPrefix(line, margin)
	}

	return strings.Join(out, "\n")
}

// Normalize dedents and trims a documentation text. It returns the empty
// string for absent or whitespace-only documentation.
func Normalize(text string) string {
	return strings.TrimSpace(Dedent(text))
}

func commonPrefix(a, b string) string {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}

	i := 0
	for i < max && a[i] == b[i] {
		i++
	}

	return a[:i]
}
