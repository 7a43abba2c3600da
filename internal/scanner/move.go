package scanner

import (
	"regexp"
	"strings"
)

var moveHeadRegex = regexp.MustCompile(`((?:public\s+)?(?:entry\s+)?(?:native\s+)?(?:inline\s+)?fun\s+(?:<[^>]+>\s*)?(\w+)\s*(?:<[^>]+>)?\s*\([^)]*\)(?:\s*:\s*[^{]+)?(?:\s+acquires\s+[^{]+)?\s*(?:\{|;))`)

// ModifierNative marks declaration-only functions whose executable body lives
// outside the scanned source (Move's native functions).
const ModifierNative = "native"

// MoveScanner extracts functions from Move source. A head may terminate in an
// opening brace (body follows, brace-depth scan) or a semicolon (native
// declaration with no body; the head itself is the record content).
type MoveScanner struct{}

// NewMoveScanner creates a new Move scanner
func NewMoveScanner() *MoveScanner {
	return &MoveScanner{}
}

// Language returns the language tag
func (s *MoveScanner) Language() string {
	return string(LanguageMove)
}

// ScanFunctions extracts function records from Move source code.
func (s *MoveScanner) ScanFunctions(filename string, text string) []FunctionRecord {
	return scanBraces(braceLanguage{
		tag:  LanguageMove,
		ext:  ".move",
		head: moveHeadRegex,
		name: func(_ string, groups []string) string {
			return "special_" + groups[2]
		},
		visibility: keywordVisibility("public"),
		modifiers: func(head string) []string {
			if strings.Contains(head, ModifierNative) {
				return []string{ModifierNative}
			}
			return []string{}
		},
		declarations: true,
		aggregate:    aggregateBodies,
	}, filename, text)
}
