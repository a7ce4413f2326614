package config

// Document is a parsed configuration mapping. The reserved key "defaults"
// holds the ordered list of pattern references for the document.
type Document map[string]any

// Reserved markers in documents and defaults lists.
const (
	// DefaultsKey is the document key holding the pattern reference list.
	DefaultsKey = "defaults"

	// SelfMarker splices the document's own body into its defaults sequence.
	SelfMarker = "_self_"

	// ReplaceMarker, as an array's first element, requests full array
	// replacement during merge instead of concatenation.
	ReplaceMarker = "__replace__"

	// DefaultType is the pattern type assumed for bare-string references.
	DefaultType = "workflows"
)

// patternRef is a normalized defaults-list entry.
type patternRef struct {
	self bool
	typ  string
	name string
}

// key returns the memoization and cycle-detection key for the reference.
func (p patternRef) key() string {
	return p.typ + "/" + p.name
}

// parseDefault normalizes one defaults-list entry. A bare string names a
// pattern of the default type; a single-key mapping names a pattern whose
// type is the pluralized key. Anything else is an *EntryError.
//
// Mapping entries are matched through asMapping because yaml.v3 decodes
// nested mappings as Document when the unmarshal target is Document.
func parseDefault(entry any) (patternRef, error) {
	if s, ok := entry.(string); ok {
		if s == SelfMarker {
			return patternRef{self: true}, nil
		}
		return patternRef{typ: DefaultType, name: s}, nil
	}
	if m, ok := asMapping(entry); ok && len(m) == 1 {
		for typ, name := range m {
			if str, ok := name.(string); ok {
				return patternRef{typ: pluralize(typ), name: str}, nil
			}
		}
	}
	return patternRef{}, &EntryError{Entry: entry}
}

// pluralize derives a pattern directory from a singular type key. The rule
// is a bare "s" suffix; directory naming elsewhere depends on this staying
// naive, so irregular plurals are intentionally not handled.
func pluralize(singular string) string {
	return singular + "s"
}
