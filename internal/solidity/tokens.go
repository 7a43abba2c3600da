package solidity

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// buildTokenList collects the leaf tokens of the tree in document order.
// Zero-width (missing) leaves are skipped.
func buildTokenList(root *tree_sitter.Node, source []byte) []Token {
	var tokens []Token
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n.ChildCount() == 0 {
			if n.StartByte() == n.EndByte() {
				return
			}
			tokens = append(tokens, Token{
				TokenType: n.Kind(),
				Value:     nodeText(n, source),
				Line:      int(n.StartPosition().Row) + 1,
				Column:    int(n.StartPosition().Column) + 1,
			})
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return tokens
}
