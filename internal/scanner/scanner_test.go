package scanner

import (
	"reflect"
	"strings"
	"testing"
)

// assertBalanced verifies that a record's body has matching delimiters and
// that the running depth returns to zero exactly at the final character.
func assertBalanced(t *testing.T, content string) {
	t.Helper()
	depth := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 && strings.Contains(content[:i+1], "{") && i != len(content)-1 {
			t.Errorf("depth reached zero before the final character (at %d of %d)", i, len(content)-1)
			return
		}
	}
	if depth != 0 {
		t.Errorf("unbalanced content: final depth %d", depth)
	}
}

func TestRustScanner(t *testing.T) {
	code := `pub fn add(a: u64, b: u64) -> u64 {
    a + b
}

fn helper(v: u64) {
    if v > 0 { consume(v) }
}
`

	s := NewRustScanner()
	functions := s.ScanFunctions("math.rs", code)

	if len(functions) != 2 {
		t.Fatalf("Expected 2 functions, got %d", len(functions))
	}

	first := functions[0]
	if first.Name != "special_add" {
		t.Errorf("Expected name special_add, got %s", first.Name)
	}
	if first.Visibility != "public" {
		t.Errorf("Expected public visibility, got %s", first.Visibility)
	}
	if first.StartLine != 1 || first.EndLine != 3 {
		t.Errorf("Expected lines 1-3, got %d-%d", first.StartLine, first.EndLine)
	}
	if first.NodeCount != 3 {
		t.Errorf("Expected node_count 3, got %d", first.NodeCount)
	}
	if first.OffsetStart != 0 || first.OffsetEnd != 0 {
		t.Errorf("Expected zero offsets, got %d/%d", first.OffsetStart, first.OffsetEnd)
	}

	second := functions[1]
	if second.Name != "special_helper" {
		t.Errorf("Expected name special_helper, got %s", second.Name)
	}
	if second.Visibility != "private" {
		t.Errorf("Expected private visibility, got %s", second.Visibility)
	}

	for _, fn := range functions {
		assertBalanced(t, fn.Content)
		if fn.StartLine > fn.EndLine {
			t.Errorf("start_line %d > end_line %d for %s", fn.StartLine, fn.EndLine, fn.Name)
		}
		if fn.Kind != KindFunctionDefinition {
			t.Errorf("Expected kind %s, got %s", KindFunctionDefinition, fn.Kind)
		}
	}

	// contract_code aggregates every extracted body in match order.
	wantCode := strings.TrimSpace(first.Content + "\n" + second.Content)
	if first.ContractCode != wantCode {
		t.Errorf("contract_code mismatch:\n got %q\nwant %q", first.ContractCode, wantCode)
	}

	wantContract := "math_rust" + ContentHash(code)
	if first.ContractName != wantContract {
		t.Errorf("Expected contract_name %s, got %s", wantContract, first.ContractName)
	}
}

func TestRustScannerUnterminatedDropped(t *testing.T) {
	code := `fn complete() {
    done()
}

fn broken(v: u64) {
    never closed
`

	functions := NewRustScanner().ScanFunctions("lib.rs", code)
	if len(functions) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(functions))
	}
	if functions[0].Name != "special_complete" {
		t.Errorf("Expected special_complete to survive, got %s", functions[0].Name)
	}
}

func TestRustScannerNoMatch(t *testing.T) {
	functions := NewRustScanner().ScanFunctions("empty.rs", "// just a comment\n")
	if len(functions) != 0 {
		t.Fatalf("Expected no functions, got %d", len(functions))
	}
}

func TestGoScanner(t *testing.T) {
	code := "func Foo() {\n  return\n}\n"

	functions := NewGoScanner().ScanFunctions("main.go", code)
	if len(functions) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(functions))
	}

	fn := functions[0]
	if fn.Name != "special_func" {
		t.Errorf("Expected placeholder name special_func, got %s", fn.Name)
	}
	if fn.StartLine != 1 || fn.EndLine != 3 {
		t.Errorf("Expected lines 1-3, got %d-%d", fn.StartLine, fn.EndLine)
	}
	if fn.NodeCount != 3 {
		t.Errorf("Expected node_count 3, got %d", fn.NodeCount)
	}
	if fn.Visibility != "public" {
		t.Errorf("Expected public visibility, got %s", fn.Visibility)
	}
	// Go's aggregate field is the whole file, not the joined bodies.
	if fn.ContractCode != code {
		t.Errorf("Expected contract_code to be the whole file")
	}
	assertBalanced(t, fn.Content)
}

func TestGoScannerMethods(t *testing.T) {
	code := `func hello() {
	fmt.Println("hello")
}

func (c *Calculator) Multiply(a, b int) int {
	return a * b
}
`

	functions := NewGoScanner().ScanFunctions("calc.go", code)
	if len(functions) != 2 {
		t.Fatalf("Expected 2 functions, got %d", len(functions))
	}
	for i, fn := range functions {
		if fn.Name != "special_func" {
			t.Errorf("Function %d: expected special_func, got %s", i, fn.Name)
		}
		assertBalanced(t, fn.Content)
	}
	if functions[0].EndLine >= functions[1].StartLine {
		t.Errorf("Expected non-overlapping records, got %d-%d then %d-%d",
			functions[0].StartLine, functions[0].EndLine, functions[1].StartLine, functions[1].EndLine)
	}
}

func TestCairoScanner(t *testing.T) {
	code := `fn felt_add(a: felt252, b: felt252) -> felt252 {
    a + b
}
`

	functions := NewCairoScanner().ScanFunctions("add.cairo", code)
	if len(functions) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(functions))
	}

	fn := functions[0]
	if fn.Name != "special_felt_add" {
		t.Errorf("Expected name special_felt_add, got %s", fn.Name)
	}
	if fn.Visibility != "public" {
		t.Errorf("Expected public visibility, got %s", fn.Visibility)
	}
	// Cairo deliberately carries no aggregate code field.
	if fn.ContractCode != "" {
		t.Errorf("Expected empty contract_code, got %q", fn.ContractCode)
	}
	wantContract := "add_cairo" + ContentHash(code)
	if fn.ContractName != wantContract {
		t.Errorf("Expected contract_name %s, got %s", wantContract, fn.ContractName)
	}
}

func TestScannerIdempotence(t *testing.T) {
	code := `pub fn one() {
    a()
}

fn two() {
    b()
}
`

	s := NewRustScanner()
	first := s.ScanFunctions("lib.rs", code)
	second := s.ScanFunctions("lib.rs", code)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-scanning identical input produced different records")
	}
}
