package scanner

import "regexp"

var (
	rustHeadRegex   = regexp.MustCompile(`((?:pub(?:\s*\([^)]*\))?\s+)?fn\s+\w+(?:<[^>]*>)?\s*\([^{]*\)(?:\s*->\s*[^{]*)?\s*\{)`)
	rustFnNameRegex = regexp.MustCompile(`\bfn\s+(\w+)`)
)

// RustScanner extracts functions from Rust source using head-pattern matching
// and brace-depth scanning.
type RustScanner struct{}

// NewRustScanner creates a new Rust scanner
func NewRustScanner() *RustScanner {
	return &RustScanner{}
}

// Language returns the language tag
func (s *RustScanner) Language() string {
	return string(LanguageRust)
}

// ScanFunctions extracts function records from Rust source code. Names carry
// the "special_" prefix marking them as heuristically extracted, and
// contract_code aggregates every extracted body in the file.
func (s *RustScanner) ScanFunctions(filename string, text string) []FunctionRecord {
	return scanBraces(braceLanguage{
		tag:  LanguageRust,
		ext:  ".rs",
		head: rustHeadRegex,
		name: func(head string, _ []string) string {
			return "special_" + capturedName(rustFnNameRegex, head)
		},
		visibility: keywordVisibility("pub"),
		aggregate:  aggregateBodies,
	}, filename, text)
}

// capturedName applies a secondary identifier pattern to a matched head.
func capturedName(re *regexp.Regexp, head string) string {
	if m := re.FindStringSubmatch(head); m != nil {
		return m[1]
	}
	return ""
}
