// Package docs renders merged configuration documents as markdown for
// project documentation.
//
// Core types:
//   - Renderer: text/template-based markdown renderer
//
// The default template emits a titled overview of the document's top-level
// keys and, when the document decodes as a workflow, a state table.
// Callers can supply their own template; the function map exposes "title"
// (English title-casing, with dashes and underscores treated as word
// separators) and "join".
//
// Example usage:
//
//	renderer := docs.NewRenderer()
//	markdown, err := renderer.Render("release-train", merged)
package docs
