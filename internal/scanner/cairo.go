package scanner

// CairoScanner extracts functions from Cairo source. It shares the Rust head
// pattern but reports every function as public (the language variant carries
// no visibility keyword the scanner inspects) and leaves contract_code empty.
type CairoScanner struct{}

// NewCairoScanner creates a new Cairo scanner
func NewCairoScanner() *CairoScanner {
	return &CairoScanner{}
}

// Language returns the language tag
func (s *CairoScanner) Language() string {
	return string(LanguageCairo)
}

// ScanFunctions extracts function records from Cairo source code.
func (s *CairoScanner) ScanFunctions(filename string, text string) []FunctionRecord {
	return scanBraces(braceLanguage{
		tag:  LanguageCairo,
		ext:  ".cairo",
		head: rustHeadRegex,
		name: func(head string, _ []string) string {
			return "special_" + capturedName(rustFnNameRegex, head)
		},
		visibility: alwaysPublic,
		aggregate:  aggregateNone,
	}, filename, text)
}
