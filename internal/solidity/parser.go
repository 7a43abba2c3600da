// Package solidity parses Solidity source into a syntax tree using the
// tree-sitter grammar. It is the grammar-backed counterpart to the lexical
// scanners: unknown file extensions are routed here by the dispatcher.
package solidity

import (
	"errors"
	"fmt"
	"strings"

	forest "github.com/alexaandru/go-sitter-forest/solidity"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Options configures a parse.
type Options struct {
	// Tolerant attaches syntax errors to the resulting SourceUnit instead of
	// failing the parse.
	Tolerant bool
	// Tokens populates SourceUnit.Tokens with the source's token list.
	Tokens bool
	// DumpJSON serializes the tree to <DumpPath>/ast.json with camelCase keys.
	DumpJSON bool
	// DumpPath is the output directory for DumpJSON. Defaults to "./out".
	DumpPath string
}

var language = tree_sitter.NewLanguage(forest.GetLanguage())

// Parse builds a SourceUnit from Solidity source text. In non-tolerant mode a
// source with syntax errors yields a *ParserError carrying the first
// offending token's message and 1-based position.
func Parse(text string, opts Options) (*SourceUnit, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set Solidity grammar: %w", err)
	}

	source := []byte(text)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("AST was not generated")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.New("AST was not generated")
	}

	unit := &SourceUnit{Node: *buildNode(root, source)}

	if opts.Tokens {
		unit.Tokens = buildTokenList(root, source)
	}

	if errs := collectSyntaxErrors(root, source); len(errs) > 0 {
		if !opts.Tolerant {
			return nil, &ParserError{Errors: errs}
		}
		unit.Errors = errs
	}

	if opts.DumpJSON {
		if err := Dump(unit, opts.DumpPath); err != nil {
			return nil, err
		}
	}

	return unit, nil
}

// buildNode converts a tree-sitter node and its named descendants.
func buildNode(n *tree_sitter.Node, source []byte) *Node {
	node := &Node{
		NodeType:  n.Kind(),
		Name:      nameOf(n, source),
		StartLine: int(n.StartPosition().Row) + 1,
		EndLine:   int(n.EndPosition().Row) + 1,
		StartByte: int(n.StartByte()),
		EndByte:   int(n.EndByte()),
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		node.Children = append(node.Children, buildNode(n.NamedChild(i), source))
	}
	return node
}

func nameOf(n *tree_sitter.Node, source []byte) string {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return nodeText(nameNode, source)
}

func nodeText(n *tree_sitter.Node, source []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if int(start) >= len(source) || int(end) > len(source) {
		return ""
	}
	return string(source[start:end])
}

// collectSyntaxErrors walks the whole tree (anonymous nodes included) and
// reports error and missing nodes in document order with 1-based positions.
func collectSyntaxErrors(root *tree_sitter.Node, source []byte) []SyntaxError {
	var errs []SyntaxError
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n.IsError() {
			errs = append(errs, SyntaxError{
				Message: fmt.Sprintf("unexpected token %q", errorExcerpt(n, source)),
				Line:    int(n.StartPosition().Row) + 1,
				Column:  int(n.StartPosition().Column) + 1,
			})
		} else if n.IsMissing() {
			errs = append(errs, SyntaxError{
				Message: fmt.Sprintf("missing %s", n.Kind()),
				Line:    int(n.StartPosition().Row) + 1,
				Column:  int(n.StartPosition().Column) + 1,
			})
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return errs
}

// errorExcerpt trims an error node's text to a short single-line excerpt.
func errorExcerpt(n *tree_sitter.Node, source []byte) string {
	text := nodeText(n, source)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	const max = 20
	if len(text) > max {
		text = text[:max]
	}
	return text
}
