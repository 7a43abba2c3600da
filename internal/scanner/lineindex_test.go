package scanner

import "testing"

func TestLineIndexLookup(t *testing.T) {
	text := "func Foo() {\n  return\n}\n"
	index := NewLineIndex(text)

	tests := []struct {
		offset int
		want   int
	}{
		{0, 1},   // first char of line 1
		{5, 1},   // middle of line 1
		{12, 1},  // the newline still belongs to line 1
		{13, 2},  // first char of line 2
		{22, 3},  // the closing brace
		{23, 3},  // one past the closing brace
		{500, 4}, // past end of text saturates to the last line
	}

	for _, tt := range tests {
		if got := index.LineAt(tt.offset); got != tt.want {
			t.Errorf("LineAt(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestLineIndexEmptyText(t *testing.T) {
	index := NewLineIndex("")
	if got := index.LineAt(0); got != 1 {
		t.Errorf("LineAt(0) on empty text = %d, want 1", got)
	}
	if got := index.LineCount(); got != 1 {
		t.Errorf("LineCount() on empty text = %d, want 1", got)
	}
}

func TestLineIndexNoTrailingNewline(t *testing.T) {
	index := NewLineIndex("a\nb")
	if got := index.LineAt(2); got != 2 {
		t.Errorf("LineAt(2) = %d, want 2", got)
	}
	if got := index.LineCount(); got != 2 {
		t.Errorf("LineCount() = %d, want 2", got)
	}
}
