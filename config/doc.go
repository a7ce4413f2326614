// Package config implements pattern-based configuration composition.
//
// A configuration document may declare a "defaults" list naming reusable
// pattern files. The engine resolves each reference against an ordered
// search path, recursively flattens nested pattern dependencies into one
// precedence-ordered sequence, and deep-merges that sequence into a single
// mapping.
//
// Core types:
//   - Document: A parsed configuration mapping
//   - Resolver: Resolves pattern references into an ordered document sequence
//   - Loader: Orchestrates parse, resolve, merge, and caching by source path
//
// # Defaults Grammar
//
// Entries in a document's "defaults" list take three forms:
//
//	defaults:
//	  - _self_              # splice this document's own body here
//	  - standard            # bare string: pattern "workflows/standard"
//	  - priority: high      # single-key mapping: pattern "prioritys/high"
//
// Mapping keys are pluralized naively by appending "s" to derive the
// pattern's directory. When "_self_" is absent the document itself is
// appended last, giving its own keys highest precedence.
//
// # Merge Semantics
//
// Later documents in the resolved sequence override earlier ones. Nested
// mappings merge recursively and arrays concatenate, unless the incoming
// array starts with the "__replace__" sentinel, which replaces the array
// wholesale:
//
//	tags: ["__replace__", "only-this"]
//
// Scalar and mixed-type conflicts resolve last-wins with no coercion.
//
// # Basic Usage
//
//	loader := config.NewLoader(config.LoaderConfig{
//	    SearchPaths: []string{".supernal/patterns"},
//	})
//
//	merged, err := loader.Get("project.yaml")
//	if err != nil {
//	    // err is a *SyntaxError, *NotFoundError, *CircularError,
//	    // or *EntryError with a fully rendered message
//	}
//
// Errors are fail-fast and pre-formatted: syntax errors carry file, line,
// column, and a marked source window; unknown pattern references list every
// available name and suggest the closest match; circular dependency errors
// render the full reference chain.
package config
