package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// contextRadius is the number of lines shown on each side of a failing
// line in syntax-error output.
const contextRadius = 3

// ParseFile reads and parses a YAML document. Parse failures are wrapped in
// a *SyntaxError carrying the file path, the 1-based error position, and a
// marked source window clamped to the file bounds.
func ParseFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newSyntaxError(path, data, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

var (
	lineRe   = regexp.MustCompile(`line (\d+)`)
	columnRe = regexp.MustCompile(`column (\d+)`)
)

// newSyntaxError locates the failure from the parser's error text. yaml.v3
// reports "line N" for syntax failures and usually no column, so both
// default to 1 when absent.
func newSyntaxError(path string, data []byte, err error) *SyntaxError {
	line, column := 1, 1
	if m := lineRe.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			line = n
		}
	}
	if m := columnRe.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			column = n
		}
	}

	return &SyntaxError{
		Path:    path,
		Line:    line,
		Column:  column,
		Context: renderContext(data, line),
		Err:     err,
	}
}

// renderContext renders the source window around a 1-based line, clamped to
// the file bounds, with the failing line marked.
func renderContext(data []byte, line int) string {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}

	first := line - contextRadius
	if first < 1 {
		first = 1
	}
	last := line + contextRadius
	if last > len(lines) {
		last = len(lines)
	}

	var sb strings.Builder
	for n := first; n <= last; n++ {
		marker := "  "
		if n == line {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%3d | %s", marker, n, lines[n-1])
		if n < last {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
