package config

import (
	"io"
	"os"
	"path/filepath"
)

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// SearchPaths lists the directories consulted, in order, when
	// resolving pattern references. Earlier entries shadow later ones.
	// When empty, DefaultSearchPaths() is used.
	SearchPaths []string

	// WarnWriter is where resolution warnings are written.
	// Defaults to os.Stderr if nil.
	WarnWriter io.Writer
}

// Loader orchestrates configuration composition: parse, resolve, merge,
// and cache keyed by source path.
//
// The cache is deliberately unsynchronized. Loading is idempotent, so
// concurrent loads of the same path may duplicate work but the surviving
// entry is correct whichever write lands last. Callers must not mutate a
// returned document if they expect cache reuse.
type Loader struct {
	resolver *Resolver
	cache    map[string]Document
}

// NewLoader creates a loader with its own resolver and an empty cache.
func NewLoader(cfg LoaderConfig) *Loader {
	paths := cfg.SearchPaths
	if len(paths) == 0 {
		paths = DefaultSearchPaths()
	}
	warnWriter := cfg.WarnWriter
	if warnWriter == nil {
		warnWriter = os.Stderr
	}
	return &Loader{
		resolver: NewResolverWithWriter(paths, warnWriter),
		cache:    make(map[string]Document),
	}
}

// DefaultSearchPaths returns the standard pattern lookup order: the
// working directory's .supernal/patterns, then the patterns directory
// shipped next to the installed binary. Entries that cannot be determined
// are omitted.
func DefaultSearchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".supernal", "patterns"))
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "..", "patterns"))
	}
	return paths
}

// Resolver returns the loader's pattern resolver.
func (l *Loader) Resolver() *Resolver {
	return l.resolver
}

// Load parses the file at path, resolves its defaults, merges the resolved
// sequence, caches the result under the exact path string, and returns it.
// Errors propagate unchanged; nothing partial is cached.
func (l *Loader) Load(path string) (Document, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	resolved, err := l.resolver.Resolve(doc)
	if err != nil {
		return nil, err
	}
	merged := Merge(resolved)
	l.cache[path] = merged
	return merged, nil
}

// Get returns the cached result for path, loading it on a miss.
func (l *Loader) Get(path string) (Document, error) {
	if doc, ok := l.cache[path]; ok {
		return doc, nil
	}
	return l.Load(path)
}

// ClearCache empties the cache entirely. There is no per-entry or
// time-based invalidation.
func (l *Loader) ClearCache() {
	l.cache = make(map[string]Document)
}
