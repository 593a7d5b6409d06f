package extractor

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// GoExtractor implements LanguageExtractor for Go.
type GoExtractor struct{}

func (g *GoExtractor) GetLanguage() *sitter.Language {
	return golang.GetLanguage()
}

func (g *GoExtractor) GetQuery() string {
	return `
		(function_declaration) @func
		(method_declaration) @func
	`
}

func (g *GoExtractor) ExtractUnit(node *sitter.Node, sourceCode []byte, filepath string, packageName string) *FunctionUnit {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	unit := &FunctionUnit{
		Filepath:  filepath,
		Package:   packageName,
		Language:  "go",
		Name:      nameNode.Content(sourceCode),
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
		Doc:       g.extractDocComment(node, sourceCode),
		Params:    []Param{},
	}

	if node.Type() == "method_declaration" {
		if receiverNode := node.ChildByFieldName("receiver"); receiverNode != nil {
			unit.Receiver = g.extractReceiverType(receiverNode, sourceCode)
		}
	}

	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		unit.Params, unit.Variadic = g.extractParams(paramsNode, sourceCode)
	}

	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		unit.Signature = strings.TrimSpace(string(sourceCode[node.StartByte():bodyNode.StartByte()]))
	} else {
		unit.Signature = node.Content(sourceCode)
	}

	return unit
}

func (g *GoExtractor) extractReceiverType(receiverNode *sitter.Node, sourceCode []byte) string {
	for i := 0; i < int(receiverNode.NamedChildCount()); i++ {
		decl := receiverNode.NamedChild(i)
		if decl.Type() != "parameter_declaration" {
			continue
		}
		if tn := decl.ChildByFieldName("type"); tn != nil {
			return tn.Content(sourceCode)
		}
	}
	return strings.Trim(receiverNode.Content(sourceCode), "()")
}

// extractParams walks only the direct children of the parameter list so
// parameters of function-typed arguments are not counted.
func (g *GoExtractor) extractParams(paramsNode *sitter.Node, sourceCode []byte) ([]Param, bool) {
	params := []Param{}
	variadic := false
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		pNode := paramsNode.NamedChild(i)
		switch pNode.Type() {
		case "parameter_declaration", "variadic_parameter_declaration":
		default:
			continue
		}

		pType := ""
		if tn := pNode.ChildByFieldName("type"); tn != nil {
			pType = tn.Content(sourceCode)
		}
		if pNode.Type() == "variadic_parameter_declaration" {
			variadic = true
			pType = "..." + pType
		}

		var names []string
		for j := 0; j < int(pNode.NamedChildCount()); j++ {
			if child := pNode.NamedChild(j); child.Type() == "identifier" {
				names = append(names, child.Content(sourceCode))
			}
		}
		if len(names) == 0 {
			params = append(params, Param{Type: pType})
			continue
		}
		for _, n := range names {
			params = append(params, Param{Name: n, Type: pType})
		}
	}
	return params, variadic
}

func (g *GoExtractor) extractDocComment(node *sitter.Node, sourceCode []byte) string {
	var commentLines []string
	currentNode := node
	for {
		prevSibling := currentNode.PrevSibling()
		if prevSibling == nil || (currentNode.StartPoint().Row-prevSibling.EndPoint().Row > 1) {
			break
		}
		if prevSibling.Type() != "comment" {
			break
		}
		commentLines = append([]string{prevSibling.Content(sourceCode)}, commentLines...)
		currentNode = prevSibling
	}
	return cleanDocComment(strings.Join(commentLines, "\n"))
}

func cleanDocComment(rawComment string) string {
	if rawComment == "" {
		return ""
	}
	lines := strings.Split(rawComment, "\n")
	var cleaned []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "//")
		l = strings.TrimPrefix(l, "/*")
		l = strings.TrimSuffix(l, "*/")
		cleaned = append(cleaned, strings.TrimSpace(l))
	}
	return strings.Join(cleaned, "\n")
}

func trimPointer(receiver string) string {
	return strings.TrimPrefix(strings.TrimSpace(receiver), "*")
}

func (u *FunctionUnit) String() string {
	return fmt.Sprintf("%s:%d %s", u.Filepath, u.StartLine, u.QualifiedName())
}
