package solidity

import (
	"encoding/json"
	"testing"
)

func TestSnakeToCamel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"node_type", "nodeType"},
		{"start_line", "startLine"},
		{"end_byte", "endByte"},
		{"token_type", "tokenType"},
		{"name", "name"},
		{"children", "children"},
		{"a_b_c", "aBC"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SnakeToCamel(tt.in); got != tt.want {
			t.Errorf("SnakeToCamel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarshalCamelCase(t *testing.T) {
	unit := &SourceUnit{
		Node: Node{
			NodeType:  "source_file",
			StartLine: 1,
			EndLine:   3,
			Children: []*Node{
				{NodeType: "contract_declaration", Name: "A", StartLine: 1, EndLine: 3},
			},
		},
		Errors: []SyntaxError{{Message: "missing }", Line: 3, Column: 1}},
	}

	data, err := json.Marshal(unit)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded["nodeType"] != "source_file" {
		t.Errorf("nodeType = %v, want source_file", decoded["nodeType"])
	}
	if _, ok := decoded["node_type"]; ok {
		t.Errorf("snake_case key should not survive serialization")
	}
	if decoded["startLine"] != float64(1) {
		t.Errorf("startLine = %v, want 1", decoded["startLine"])
	}

	children, ok := decoded["children"].([]any)
	if !ok || len(children) != 1 {
		t.Fatalf("children = %v, want one entry", decoded["children"])
	}
	child := children[0].(map[string]any)
	if child["nodeType"] != "contract_declaration" {
		t.Errorf("Nested keys should be camelized too, got %v", child)
	}

	errs, ok := decoded["errors"].([]any)
	if !ok || len(errs) != 1 {
		t.Fatalf("errors = %v, want one entry", decoded["errors"])
	}
	first := errs[0].(map[string]any)
	if first["message"] != "missing }" || first["line"] != float64(3) {
		t.Errorf("Error entry = %v", first)
	}
}
