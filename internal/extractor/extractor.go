package extractor

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor orchestrates the extraction process using language-specific extractors.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "go":
		langExt = &GoExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Extractor{langExtractor: langExt, langName: lang}, nil
}

// ExtractFromFile reads and parses a single source file.
func (e *Extractor) ExtractFromFile(filepath string) ([]*FunctionUnit, error) {
	sourceCode, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return e.ExtractFromSource(sourceCode, filepath)
}

// ExtractFromSource parses sourceCode and returns every function and method
// declaration in source order. filepath is only recorded on the units.
func (e *Extractor) ExtractFromSource(sourceCode []byte, filepath string) ([]*FunctionUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filepath, err)
	}
	defer tree.Close()

	packageName := e.detectPackageName(tree.RootNode(), sourceCode)

	query, err := sitter.NewQuery([]byte(e.langExtractor.GetQuery()), e.langExtractor.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	var units []*FunctionUnit
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			unit := e.langExtractor.ExtractUnit(c.Node, sourceCode, filepath, packageName)
			if unit != nil {
				unit.ID = BuildStableSymbolID(unit)
				units = append(units, unit)
			}
		}
	}

	return units, nil
}

func (e *Extractor) detectPackageName(root *sitter.Node, sourceCode []byte) string {
	if e.langName == "go" {
		pkgQuery, err := sitter.NewQuery([]byte(`(package_clause (package_identifier) @pkg)`), e.langExtractor.GetLanguage())
		if err != nil {
			return ""
		}
		defer pkgQuery.Close()
		pqc := sitter.NewQueryCursor()
		defer pqc.Close()
		pqc.Exec(pkgQuery, root)
		if m, ok := pqc.NextMatch(); ok {
			return m.Captures[0].Node.Content(sourceCode)
		}
	}
	return ""
}

// Index maps each unit's QualifiedName to the unit. Later duplicates win.
func Index(units []*FunctionUnit) map[string]*FunctionUnit {
	idx := make(map[string]*FunctionUnit, len(units))
	for _, u := range units {
		idx[u.QualifiedName()] = u
	}
	return idx
}
