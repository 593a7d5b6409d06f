package extractor

import sitter "github.com/smacker/go-tree-sitter"

// FunctionUnit is a function or method declaration together with its
// documentation comment.
type FunctionUnit struct {
	ID        string  `json:"id"`
	Filepath  string  `json:"filepath"`
	Package   string  `json:"package"`
	Language  string  `json:"language"`
	Name      string  `json:"name"`
	Receiver  string  `json:"receiver,omitempty"` // receiver type for methods, e.g. "*User"
	StartLine int     `json:"start_line"`
	EndLine   int     `json:"end_line"`
	Signature string  `json:"signature"`
	Doc       string  `json:"doc"`
	Params    []Param `json:"params"`
	Variadic  bool    `json:"variadic,omitempty"`
}

// Param is a single positional parameter.
type Param struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// DocText implements docmeta.Documented.
func (u *FunctionUnit) DocText() string {
	return u.Doc
}

// QualifiedName is Name for functions and Receiver.Name for methods, with
// any pointer star dropped from the receiver.
func (u *FunctionUnit) QualifiedName() string {
	if u.Receiver == "" {
		return u.Name
	}
	return trimPointer(u.Receiver) + "." + u.Name
}

// LanguageExtractor defines the interface that each language parser must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	ExtractUnit(node *sitter.Node, sourceCode []byte, filepath string, packageName string) *FunctionUnit
}
