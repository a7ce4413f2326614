package config

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxError reports a YAML parse failure with source context.
type SyntaxError struct {
	// Path is the file that failed to parse.
	Path string

	// Line and Column locate the failure, 1-based.
	Line   int
	Column int

	// Context is a rendered source window around the failing line.
	Context string

	// Err is the underlying parser error.
	Err error
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "YAML syntax error in %s:%d:%d", e.Path, e.Line, e.Column)
	if e.Context != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Context)
	}
	return sb.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a pattern reference that matched no file in any
// search path entry.
type NotFoundError struct {
	// Name and Type identify the missing pattern.
	Name string
	Type string

	// Available lists every pattern name known for Type, deduplicated
	// across all search paths.
	Available []string

	// Suggestion is the closest available name, empty when nothing is
	// similar enough to suggest.
	Suggestion string
}

func (e *NotFoundError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pattern not found: %s/%s", e.Type, e.Name)
	if len(e.Available) > 0 {
		fmt.Fprintf(&sb, "\nAvailable %s: %s", e.Type, strings.Join(e.Available, ", "))
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&sb, "\nDid you mean %q?", e.Suggestion)
	}
	return sb.String()
}

// CircularError reports a defaults chain that revisits a pattern already on
// the active resolution path. Chain holds type/name keys in reference
// order, ending with the repeated key.
type CircularError struct {
	Chain []string
}

func (e *CircularError) Error() string {
	return "circular pattern dependency: " + strings.Join(e.Chain, " -> ")
}

// EntryError reports a defaults-list entry that is neither a string nor a
// single-key mapping naming a pattern.
type EntryError struct {
	Entry any
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("invalid defaults entry %v: expected a string or a single-key mapping", e.Entry)
}

// IsSyntax reports whether the error is a YAML syntax error.
func IsSyntax(err error) bool {
	var e *SyntaxError
	return errors.As(err, &e)
}

// IsNotFound reports whether the error is a missing-pattern error.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsCircular reports whether the error is a circular-dependency error.
func IsCircular(err error) bool {
	var e *CircularError
	return errors.As(err, &e)
}

// IsInvalidEntry reports whether the error is a malformed defaults entry.
func IsInvalidEntry(err error) bool {
	var e *EntryError
	return errors.As(err, &e)
}
