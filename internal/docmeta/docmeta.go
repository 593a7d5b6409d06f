// Package docmeta reads function metadata out of documentation comments.
//
// The comment micro-format has two markers:
//
//	Title: Human readable name
//	Input 1: first argument
//	Input 2: second argument
//
// The first line starting with "Title: " names the function; indentation
// before it is ignored. Every line containing "Input <anything>:" declares
// one positional input, wherever on the line it appears, so bulleted lines
// such as "- Input 1: x" count too.
package docmeta

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// TitlePrefix is prepended to every extracted title.
const TitlePrefix = "Function: "

var (
	titleRe = regexp.MustCompile(`(?m)^[ \t]*Title: (.+)$`)
	inputRe = regexp.MustCompile(`(?m)Input .+:`)
)

// ErrMissingTitle is returned when a comment has no Title line.
var ErrMissingTitle = errors.New("documentation comment has no Title line")

// ParseError describes a comment that cannot produce metadata.
type ParseError struct {
	Doc string
	Err error
}

func (e *ParseError) Error() string {
	first, _, _ := strings.Cut(strings.TrimSpace(e.Doc), "\n")
	if first == "" {
		return fmt.Sprintf("metadata parse: %v (empty comment)", e.Err)
	}
	return fmt.Sprintf("metadata parse: %v (comment starts %q)", e.Err, first)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Documented is anything that carries a documentation comment.
type Documented interface {
	DocText() string
}

// Metadata is derived from a comment every time it is needed.
type Metadata struct {
	Title          string `json:"title"`
	DeclaredInputs int    `json:"declared_inputs"`
}

// ExtractTitle returns "Function: <title>" for the first Title line in doc.
func ExtractTitle(doc string) (string, error) {
	m := titleRe.FindStringSubmatch(doc)
	if m == nil {
		return "", &ParseError{Doc: doc, Err: ErrMissingTitle}
	}
	return TitlePrefix + strings.TrimRight(m[1], " \t\r"), nil
}

// CountDeclaredInputs returns how many Input lines doc declares. A comment
// without any is a zero-input function, not an error.
func CountDeclaredInputs(doc string) int {
	return len(inputRe.FindAllStringIndex(doc, -1))
}

// Parse extracts both title and declared input count.
func Parse(doc string) (Metadata, error) {
	title, err := ExtractTitle(doc)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{Title: title, DeclaredInputs: CountDeclaredInputs(doc)}, nil
}

// TitleOf returns a provider that extracts fn's title when called. Nothing
// is parsed until then.
func TitleOf(fn Documented) func() (string, error) {
	return func() (string, error) {
		return ExtractTitle(fn.DocText())
	}
}
