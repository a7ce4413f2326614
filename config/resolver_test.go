package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writePattern writes {dir}/{typ}/{name}.yaml with the given content.
func writePattern(t *testing.T, dir, typ, name, content string) {
	t.Helper()
	patternDir := filepath.Join(dir, typ)
	if err := os.MkdirAll(patternDir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(patternDir, name+".yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolver_SearchPathPrecedence(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writePattern(t, first, "workflows", "foo", "origin: first\n")
	writePattern(t, second, "workflows", "foo", "origin: second\n")

	resolver := NewResolver([]string{first, second})

	doc, err := resolver.ResolvePattern("foo", "workflows")
	if err != nil {
		t.Fatalf("ResolvePattern() error = %v", err)
	}
	if got := doc["origin"]; got != "first" {
		t.Errorf("origin = %v, want %q", got, "first")
	}
}

func TestResolver_WarnsOnShadowedPattern(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writePattern(t, first, "workflows", "foo", "origin: first\n")
	writePattern(t, second, "workflows", "foo", "origin: second\n")

	var buf bytes.Buffer
	resolver := NewResolverWithWriter([]string{first, second}, &buf)

	if _, err := resolver.ResolvePattern("foo", "workflows"); err != nil {
		t.Fatalf("ResolvePattern() error = %v", err)
	}

	if len(resolver.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1", len(resolver.Warnings))
	}
	if !strings.Contains(resolver.Warnings[0], "workflows/foo") ||
		!strings.Contains(resolver.Warnings[0], "shadowed") {
		t.Errorf("Warnings[0] = %q, want shadowed workflows/foo", resolver.Warnings[0])
	}
	if !strings.Contains(buf.String(), "Warning: ") {
		t.Errorf("warn output = %q, want Warning: prefix", buf.String())
	}

	// Memoized lookups must not warn again.
	if _, err := resolver.ResolvePattern("foo", "workflows"); err != nil {
		t.Fatal(err)
	}
	if len(resolver.Warnings) != 1 {
		t.Errorf("len(Warnings) after memoized lookup = %d, want 1", len(resolver.Warnings))
	}
}

func TestResolver_NoWarningWithoutShadowing(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "solo", "a: 1\n")

	var buf bytes.Buffer
	resolver := NewResolverWithWriter([]string{dir, t.TempDir()}, &buf)

	if _, err := resolver.ResolvePattern("solo", "workflows"); err != nil {
		t.Fatal(err)
	}
	if len(resolver.Warnings) != 0 || buf.Len() != 0 {
		t.Errorf("Warnings = %v, output = %q, want none", resolver.Warnings, buf.String())
	}
}

func TestResolver_PatternMemoized(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "foo", "version: 1\n")

	resolver := NewResolver([]string{dir})
	if _, err := resolver.ResolvePattern("foo", "workflows"); err != nil {
		t.Fatalf("ResolvePattern() error = %v", err)
	}

	// Rewrite the file; the memoized document must win for this instance.
	writePattern(t, dir, "workflows", "foo", "version: 2\n")

	doc, err := resolver.ResolvePattern("foo", "workflows")
	if err != nil {
		t.Fatalf("ResolvePattern() error = %v", err)
	}
	if got := doc["version"]; got != 1 {
		t.Errorf("version = %v, want 1", got)
	}
}

func TestResolver_NotFoundWithSuggestion(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "test-workflow", "name: test\n")
	writePattern(t, dir, "workflows", "other", "name: other\n")

	resolver := NewResolver([]string{dir})

	_, err := resolver.ResolvePattern("tets-workflow", "workflows")
	if !IsNotFound(err) {
		t.Fatalf("ResolvePattern() error = %v, want *NotFoundError", err)
	}

	nf := err.(*NotFoundError)
	if want := []string{"other", "test-workflow"}; !reflect.DeepEqual(nf.Available, want) {
		t.Errorf("Available = %v, want %v", nf.Available, want)
	}
	if nf.Suggestion != "test-workflow" {
		t.Errorf("Suggestion = %q, want %q", nf.Suggestion, "test-workflow")
	}

	msg := err.Error()
	if want := `Did you mean "test-workflow"?`; !strings.Contains(msg, want) {
		t.Errorf("Error() = %q, want it to contain %q", msg, want)
	}
}

func TestResolver_NotFoundNoSimilarCandidate(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "alpha", "a: 1\n")

	resolver := NewResolver([]string{dir})

	_, err := resolver.ResolvePattern("zzzzzzzzzz", "workflows")
	if !IsNotFound(err) {
		t.Fatalf("ResolvePattern() error = %v, want *NotFoundError", err)
	}
	if nf := err.(*NotFoundError); nf.Suggestion != "" {
		t.Errorf("Suggestion = %q, want empty", nf.Suggestion)
	}
}

func TestResolver_ListPatternsDeduplicates(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writePattern(t, first, "workflows", "shared", "a: 1\n")
	writePattern(t, second, "workflows", "shared", "a: 2\n")
	writePattern(t, second, "workflows", "extra", "b: 1\n")

	resolver := NewResolver([]string{first, second})

	got := resolver.ListPatterns("workflows")
	want := []string{"extra", "shared"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListPatterns() = %v, want %v", got, want)
	}
}

func TestResolver_ImplicitSelfPrecedence(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "a", "key: from-a\nonly_a: true\n")
	writePattern(t, dir, "workflows", "b", "key: from-b\n")

	resolver := NewResolver([]string{dir})
	doc := Document{
		"defaults": []any{"a", "b"},
		"key":      "from-doc",
	}

	resolved, err := resolver.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	merged := Merge(resolved)

	if got := merged["key"]; got != "from-doc" {
		t.Errorf("key = %v, want %q", got, "from-doc")
	}
	if got := merged["only_a"]; got != true {
		t.Errorf("only_a = %v, want true", got)
	}
}

func TestResolver_ExplicitSelfOrdering(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "a", "key: from-a\n")
	writePattern(t, dir, "workflows", "b", "key: from-b\n")

	resolver := NewResolver([]string{dir})
	doc := Document{
		"defaults": []any{"a", "b", SelfMarker},
		"own":      "value",
	}

	resolved, err := resolver.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	merged := Merge(resolved)

	// _self_ is last, but "key" is only defined by the patterns: b wins.
	if got := merged["key"]; got != "from-b" {
		t.Errorf("key = %v, want %q", got, "from-b")
	}
	if got := merged["own"]; got != "value" {
		t.Errorf("own = %v, want %q", got, "value")
	}
}

func TestResolver_SelfBeforePatternsLoses(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "a", "key: from-a\n")

	resolver := NewResolver([]string{dir})
	doc := Document{
		"defaults": []any{SelfMarker, "a"},
		"key":      "from-doc",
	}

	resolved, err := resolver.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	merged := Merge(resolved)

	if got := merged["key"]; got != "from-a" {
		t.Errorf("key = %v, want %q", got, "from-a")
	}
}

func TestResolver_NestedDefaultsSpliced(t *testing.T) {
	dir := t.TempDir()
	// base sets the key; mid depends on base and overrides it; the document
	// depends on mid only. Flattening must keep base before mid.
	writePattern(t, dir, "workflows", "base", "key: from-base\nbase_only: yes\n")
	writePattern(t, dir, "workflows", "mid", "defaults:\n  - base\nkey: from-mid\n")

	resolver := NewResolver([]string{dir})
	doc := Document{"defaults": []any{"mid"}}

	resolved, err := resolver.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	merged := Merge(resolved)

	if got := merged["key"]; got != "from-mid" {
		t.Errorf("key = %v, want %q", got, "from-mid")
	}
	if got := merged["base_only"]; got != "yes" {
		t.Errorf("base_only = %v, want %q", got, "yes")
	}
}

func TestResolver_CycleDetected(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "a", "defaults:\n  - workflow: b\n")
	writePattern(t, dir, "workflows", "b", "defaults:\n  - workflow: a\n")

	resolver := NewResolver([]string{dir})
	doc := Document{"defaults": []any{map[string]any{"workflow": "a"}}}

	_, err := resolver.Resolve(doc)
	if !IsCircular(err) {
		t.Fatalf("Resolve() error = %v, want *CircularError", err)
	}

	chain := err.(*CircularError).Chain
	if !containsString(chain, "workflows/a") || !containsString(chain, "workflows/b") {
		t.Errorf("Chain = %v, want it to contain workflows/a and workflows/b", chain)
	}
	if first, last := chain[0], chain[len(chain)-1]; first != last {
		t.Errorf("Chain = %v, want it to end where it began", chain)
	}

	msg := err.Error()
	if want := "workflows/a -> workflows/b -> workflows/a"; !strings.Contains(msg, want) {
		t.Errorf("Error() = %q, want it to contain %q", msg, want)
	}
}

func TestResolver_SelfCycleDetected(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "loop", "defaults:\n  - loop\n")

	resolver := NewResolver([]string{dir})
	doc := Document{"defaults": []any{"loop"}}

	_, err := resolver.Resolve(doc)
	if !IsCircular(err) {
		t.Fatalf("Resolve() error = %v, want *CircularError", err)
	}
}

func TestResolver_DiamondIsNotACycle(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "workflows", "shared", "common: yes\n")
	writePattern(t, dir, "workflows", "left", "defaults:\n  - shared\nleft: yes\n")
	writePattern(t, dir, "workflows", "right", "defaults:\n  - shared\nright: yes\n")

	resolver := NewResolver([]string{dir})
	doc := Document{"defaults": []any{"left", "right"}}

	resolved, err := resolver.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	merged := Merge(resolved)
	for _, key := range []string{"common", "left", "right"} {
		if got := merged[key]; got != "yes" {
			t.Errorf("%s = %v, want %q", key, got, "yes")
		}
	}
}

func TestResolver_NoDefaultsReturnsDocument(t *testing.T) {
	resolver := NewResolver(nil)
	doc := Document{"key": "value"}

	resolved, err := resolver.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(resolved) != 1 || !reflect.DeepEqual(resolved[0], doc) {
		t.Errorf("Resolve() = %v, want [%v]", resolved, doc)
	}
}

func TestResolver_MappingEntryPluralizesType(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "prioritys", "high", "urgency: high\n")

	resolver := NewResolver([]string{dir})
	doc := Document{"defaults": []any{map[string]any{"priority": "high"}}}

	resolved, err := resolver.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := Merge(resolved)["urgency"]; got != "high" {
		t.Errorf("urgency = %v, want %q", got, "high")
	}
}

func TestParseDefault(t *testing.T) {
	tests := []struct {
		name    string
		entry   any
		want    patternRef
		wantErr bool
	}{
		{
			name:  "self marker",
			entry: "_self_",
			want:  patternRef{self: true},
		},
		{
			name:  "bare string uses default type",
			entry: "standard",
			want:  patternRef{typ: "workflows", name: "standard"},
		},
		{
			name:  "single-key mapping pluralizes",
			entry: map[string]any{"workflow": "standard"},
			want:  patternRef{typ: "workflows", name: "standard"},
		},
		{
			// yaml.v3 produces Document, not map[string]any, for nested
			// mappings when the unmarshal target is Document.
			name:  "single-key mapping decoded as Document",
			entry: Document{"workflow": "standard"},
			want:  patternRef{typ: "workflows", name: "standard"},
		},
		{
			name:    "multi-key mapping decoded as Document",
			entry:   Document{"a": "x", "b": "y"},
			wantErr: true,
		},
		{
			name:  "irregular singular stays naive",
			entry: map[string]any{"policy": "strict"},
			want:  patternRef{typ: "policys", name: "strict"},
		},
		{
			name:    "multi-key mapping",
			entry:   map[string]any{"a": "x", "b": "y"},
			wantErr: true,
		},
		{
			name:    "non-string value",
			entry:   map[string]any{"workflow": 7},
			wantErr: true,
		},
		{
			name:    "number entry",
			entry:   42,
			wantErr: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDefault(tt.entry)
			if tt.wantErr {
				if !IsInvalidEntry(err) {
					t.Fatalf("parseDefault(%v) error = %v, want *EntryError", tt.entry, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDefault(%v) error = %v", tt.entry, err)
			}
			if got != tt.want {
				t.Errorf("parseDefault(%v) = %+v, want %+v", tt.entry, got, tt.want)
			}
		})
	}
}

func TestResolver_DefaultsNotAList(t *testing.T) {
	resolver := NewResolver(nil)
	doc := Document{"defaults": "oops"}

	_, err := resolver.Resolve(doc)
	if !IsInvalidEntry(err) {
		t.Errorf("Resolve() error = %v, want *EntryError", err)
	}
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
