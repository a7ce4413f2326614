package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Resolver flattens a document's defaults declaration into an ordered
// document sequence. Pattern files are looked up as
// {searchPath}/{type}/{name}.yaml across search path entries in order;
// earlier entries shadow later ones.
//
// Parsed patterns are memoized per resolver instance, keyed by type/name.
// Create one resolver per loader rather than sharing across runs.
type Resolver struct {
	searchPaths []string
	patterns    map[string]Document
	errWriter   io.Writer

	// Warnings collects non-fatal issues seen during resolution, such as
	// a pattern file shadowed by an earlier search path entry.
	Warnings []string
}

// NewResolver creates a resolver over the given search path entries.
// Warnings are written to os.Stderr.
func NewResolver(searchPaths []string) *Resolver {
	return NewResolverWithWriter(searchPaths, os.Stderr)
}

// NewResolverWithWriter creates a resolver that writes warnings to
// errWriter. This is useful for testing or when warnings should be
// collected silently.
func NewResolverWithWriter(searchPaths []string, errWriter io.Writer) *Resolver {
	return &Resolver{
		searchPaths: searchPaths,
		patterns:    make(map[string]Document),
		errWriter:   errWriter,
	}
}

// warn records a warning and optionally prints it.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.errWriter != nil {
		fmt.Fprintf(r.errWriter, "Warning: %s\n", msg)
	}
}

// SearchPaths returns the resolver's search path entries in lookup order.
func (r *Resolver) SearchPaths() []string {
	paths := make([]string, len(r.searchPaths))
	copy(paths, r.searchPaths)
	return paths
}

// Resolve flattens the document's defaults list into a precedence-ordered
// sequence: later documents override earlier ones when merged.
//
// Each "_self_" entry splices doc at that position (every occurrence; the
// merge is idempotent, so repeats cannot change the result). Pattern
// entries are resolved and, when a pattern declares its own defaults, the
// pattern's fully flattened sequence is spliced in so indirect overrides
// keep their relative order. When "_self_" never appears, doc is appended
// once at the end.
//
// A single reference stack spans the whole call, including nested pattern
// expansion, so any chain that revisits a pattern still on the active path
// raises a *CircularError carrying the full chain.
func (r *Resolver) Resolve(doc Document) ([]Document, error) {
	return r.resolve(doc, &refStack{})
}

func (r *Resolver) resolve(doc Document, stack *refStack) ([]Document, error) {
	raw, ok := doc[DefaultsKey]
	if !ok || raw == nil {
		return []Document{doc}, nil
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil, &EntryError{Entry: raw}
	}

	var resolved []Document
	sawSelf := false
	for _, entry := range entries {
		ref, err := parseDefault(entry)
		if err != nil {
			return nil, err
		}
		if ref.self {
			sawSelf = true
			resolved = append(resolved, doc)
			continue
		}

		key := ref.key()
		if stack.contains(key) {
			return nil, &CircularError{Chain: append(stack.path(), key)}
		}

		pattern, err := r.ResolvePattern(ref.name, ref.typ)
		if err != nil {
			return nil, err
		}

		if _, nested := pattern[DefaultsKey]; nested {
			stack.push(key)
			sub, err := r.resolve(pattern, stack)
			stack.pop()
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, sub...)
		} else {
			resolved = append(resolved, pattern)
		}
	}

	if !sawSelf {
		resolved = append(resolved, doc)
	}
	return resolved, nil
}

// ResolvePattern locates and parses the pattern {type}/{name}.yaml, taking
// the first match across search path entries in order. Results are
// memoized for the resolver's lifetime. When no entry has the file, the
// returned *NotFoundError lists every available name for the type and the
// closest match, if any is similar enough.
func (r *Resolver) ResolvePattern(name, typ string) (Document, error) {
	if typ == "" {
		typ = DefaultType
	}
	key := typ + "/" + name

	if doc, ok := r.patterns[key]; ok {
		return doc, nil
	}

	for i, dir := range r.searchPaths {
		path := filepath.Join(dir, typ, name+".yaml")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		doc, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		for _, later := range r.searchPaths[i+1:] {
			shadowed := filepath.Join(later, typ, name+".yaml")
			if _, err := os.Stat(shadowed); err == nil {
				r.warn(fmt.Sprintf("pattern %s at %s is shadowed by %s", key, shadowed, path))
			}
		}
		r.patterns[key] = doc
		return doc, nil
	}

	available := r.ListPatterns(typ)
	return nil, &NotFoundError{
		Name:       name,
		Type:       typ,
		Available:  available,
		Suggestion: closestMatch(name, available),
	}
}

// ListPatterns returns the deduplicated, sorted pattern names available for
// a type across all search path entries. Used for diagnostics.
func (r *Resolver) ListPatterns(typ string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range r.searchPaths {
		entries, err := os.ReadDir(filepath.Join(dir, typ))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".yaml")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// refStack is the active resolution path. It mirrors the call stack
// exactly: a key is pushed before a pattern's own defaults expand and
// popped after, so shared dependencies across sibling branches do not
// trip cycle detection.
type refStack struct {
	keys []string
}

func (s *refStack) contains(key string) bool {
	for _, k := range s.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (s *refStack) push(key string) {
	s.keys = append(s.keys, key)
}

func (s *refStack) pop() {
	s.keys = s.keys[:len(s.keys)-1]
}

func (s *refStack) path() []string {
	path := make([]string, len(s.keys))
	copy(path, s.keys)
	return path
}
