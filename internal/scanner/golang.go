package scanner

import "regexp"

var goHeadRegex = regexp.MustCompile(`func\s+.*\{`)

// GoScanner extracts functions from Go source. The head pattern captures no
// identifier, so every record carries the constant placeholder name
// "special_func" and contract_code holds the whole file. Both asymmetries are
// relied upon downstream and are preserved deliberately.
type GoScanner struct{}

// NewGoScanner creates a new Go scanner
func NewGoScanner() *GoScanner {
	return &GoScanner{}
}

// Language returns the language tag
func (s *GoScanner) Language() string {
	return string(LanguageGo)
}

// ScanFunctions extracts function records from Go source code.
func (s *GoScanner) ScanFunctions(filename string, text string) []FunctionRecord {
	return scanBraces(braceLanguage{
		tag:  LanguageGo,
		ext:  ".go",
		head: goHeadRegex,
		name: func(string, []string) string {
			return "special_func"
		},
		visibility: alwaysPublic,
		aggregate:  aggregateWholeFile,
	}, filename, text)
}
