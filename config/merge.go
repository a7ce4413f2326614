package config

// Merge deep-merges an ordered document sequence into a single document,
// folding left from an empty mapping. Later documents override earlier
// ones. The result is built from fresh maps at every merged level, but
// values taken wholesale from a source document are shared, not copied.
func Merge(docs []Document) Document {
	merged := make(map[string]any)
	for _, doc := range docs {
		merged = deepMerge(merged, doc)
	}
	return Document(merged)
}

// deepMerge combines source into target, returning a new mapping. Keys
// whose values are both plain mappings merge recursively; arrays follow
// the array merge policy; everything else is replaced by source's value
// unconditionally, including across type changes.
func deepMerge(target, source map[string]any) map[string]any {
	merged := make(map[string]any, len(target)+len(source))
	for k, v := range target {
		merged[k] = v
	}

	for k, sv := range source {
		tv, exists := merged[k]
		if !exists {
			merged[k] = sv
			continue
		}

		tm, targetIsMap := asMapping(tv)
		sm, sourceIsMap := asMapping(sv)
		if targetIsMap && sourceIsMap {
			merged[k] = deepMerge(tm, sm)
			continue
		}

		ta, targetIsArray := tv.([]any)
		sa, sourceIsArray := sv.([]any)
		if targetIsArray && sourceIsArray {
			merged[k] = mergeArrays(ta, sa)
			continue
		}

		merged[k] = sv
	}
	return merged
}

// mergeArrays concatenates target and source, preserving duplicates. A
// source array headed by the replace sentinel instead replaces the value
// entirely, with the sentinel stripped.
func mergeArrays(target, source []any) []any {
	if len(source) > 0 {
		if s, ok := source[0].(string); ok && s == ReplaceMarker {
			replaced := make([]any, len(source)-1)
			copy(replaced, source[1:])
			return replaced
		}
	}
	merged := make([]any, 0, len(target)+len(source))
	merged = append(merged, target...)
	return append(merged, source...)
}

// asMapping reports whether v is a plain mapping. Nil values and arrays
// are not mappings; this is what separates recursive-merge targets from
// scalars.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}
