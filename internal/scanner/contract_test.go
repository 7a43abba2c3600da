package scanner

import (
	"strings"
	"testing"
)

func TestContentHashDeterministic(t *testing.T) {
	text := "pub fn one() {\n    a()\n}\n"

	first := ContentHash(text)
	second := ContentHash(text)
	if first != second {
		t.Fatalf("Hash not stable: %s vs %s", first, second)
	}
	if first == "" {
		t.Fatalf("Hash should never be empty")
	}
	for _, c := range first {
		if c < '0' || c > '9' {
			t.Fatalf("Hash should be decimal, got %s", first)
		}
	}

	if ContentHash(text) == ContentHash(text+" ") {
		t.Errorf("Different content should hash differently")
	}
}

func TestContractName(t *testing.T) {
	text := "fn add(a: felt252) -> felt252 {\n}\n"

	got := ContractName("token.cairo", ".cairo", LanguageCairo, text)
	want := "token_cairo" + ContentHash(text)
	if got != want {
		t.Errorf("ContractName = %s, want %s", got, want)
	}
	if strings.Contains(got, ".cairo") {
		t.Errorf("Extension should be replaced, got %s", got)
	}
}

func TestContractNameDisambiguatesByContent(t *testing.T) {
	a := ContractName("lib.rs", ".rs", LanguageRust, "fn a() {}\n")
	b := ContractName("lib.rs", ".rs", LanguageRust, "fn b() {}\n")
	if a == b {
		t.Errorf("Same base name with different content should yield different contract names")
	}
}
