package embeddings

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	short := "func main() {}"
	if got := truncate(short); got != short {
		t.Errorf("Short input should pass through, got %d bytes", len(got))
	}

	long := strings.Repeat("x", maxInputBytes+100)
	got := truncate(long)
	if len(got) != maxInputBytes {
		t.Errorf("Expected %d bytes, got %d", maxInputBytes, len(got))
	}
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	// Place a multi-byte rune straddling the cut point.
	long := strings.Repeat("a", maxInputBytes-1) + "世界"
	got := truncate(long)
	if len(got) > maxInputBytes {
		t.Fatalf("Truncated to %d bytes, cap is %d", len(got), maxInputBytes)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Truncation split a UTF-8 sequence")
	}
}
