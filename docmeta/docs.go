package docmeta

// DocChain describes the documentation texts along an item's containment
// chain, as provided by the host framework. Order within each slice is
// outermost scope first; absent documentation is an empty string.
type DocChain struct {
	// Packages holds the documentation of every enclosing package and of
	// the immediate module, outermost package first.
	Packages []string

	// Classes holds the documentation along the class resolution chain,
	// outermost base first. The universal base is never included.
	Classes []string

	// Own is the item's own documentation.
	Own string
}

// Flatten returns the non-empty documentation texts oldest scope first,
// each dedented and trimmed. Absent documentation at any level is skipped,
// never an error. Feeding the result to Merge makes the most specific
// scope win for duplicate annotation keys.
func (c DocChain) Flatten() []string {
	var docs []string

	for _, text := range c.Packages {
		docs = appendDoc(docs, text)
	}
	for _, text := range c.Classes {
		docs = appendDoc(docs, text)
	}

	return appendDoc(docs, c.Own)
}

// Meta returns the merged annotations of the whole chain.
func (c DocChain) Meta() map[string]string {
	return Merge(c.Flatten())
}

func appendDoc(docs []string, text string) []string {
	if normalized := Normalize(text); normalized != "" {
		return append(docs, normalized)
	}
	return docs
}
