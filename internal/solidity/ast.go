package solidity

// Node is one node of the parsed syntax tree. NodeType is the grammar's node
// kind; Name is populated for declarations that carry an identifier.
type Node struct {
	NodeType  string
	Name      string
	StartLine int
	EndLine   int
	StartByte int
	EndByte   int
	Children  []*Node
}

// SourceUnit is the root of a parsed Solidity file. Errors is only populated
// in tolerant mode; Tokens only when Options.Tokens was set.
type SourceUnit struct {
	Node
	Errors []SyntaxError
	Tokens []Token
}

// Token is one lexical token of the source, in document order.
type Token struct {
	TokenType string
	Value     string
	Line      int
	Column    int
}

// FunctionDefinitions returns every function-definition node in the tree in
// document order. Used by the indexer to chunk Solidity files at function
// granularity.
func (u *SourceUnit) FunctionDefinitions() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.NodeType == "function_definition" || n.NodeType == "constructor_definition" ||
			n.NodeType == "modifier_definition" || n.NodeType == "fallback_receive_definition" {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(&u.Node)
	return out
}

// fields exposes a node as snake_case keyed values for JSON serialization.
func (n *Node) fields() map[string]any {
	children := make([]any, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, c.fields())
	}
	return map[string]any{
		"node_type":  n.NodeType,
		"name":       n.Name,
		"start_line": n.StartLine,
		"end_line":   n.EndLine,
		"start_byte": n.StartByte,
		"end_byte":   n.EndByte,
		"children":   children,
	}
}

func (u *SourceUnit) fields() map[string]any {
	m := u.Node.fields()

	errors := make([]any, 0, len(u.Errors))
	for _, e := range u.Errors {
		errors = append(errors, map[string]any{
			"message": e.Message,
			"line":    e.Line,
			"column":  e.Column,
		})
	}
	m["errors"] = errors

	tokens := make([]any, 0, len(u.Tokens))
	for _, t := range u.Tokens {
		tokens = append(tokens, map[string]any{
			"token_type": t.TokenType,
			"value":      t.Value,
			"line":       t.Line,
			"column":     t.Column,
		})
	}
	m["tokens"] = tokens

	return m
}
