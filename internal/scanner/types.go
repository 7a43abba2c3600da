package scanner

// KindFunctionDefinition is the record type tag shared by every scanner.
const KindFunctionDefinition = "FunctionDefinition"

// FunctionRecord represents one detected function in a source file.
// OffsetStart and OffsetEnd are reserved and always zero; consumers must not
// rely on them being populated.
type FunctionRecord struct {
	Kind         string   `json:"type"`
	Name         string   `json:"name"`
	StartLine    int      `json:"start_line"`
	EndLine      int      `json:"end_line"`
	OffsetStart  int      `json:"offset_start"`
	OffsetEnd    int      `json:"offset_end"`
	Content      string   `json:"content"`
	ContractName string   `json:"contract_name"`
	ContractCode string   `json:"contract_code"`
	Modifiers    []string `json:"modifiers"`
	Visibility   string   `json:"visibility"`
	NodeCount    int      `json:"node_count"`
}

// Scanner is the interface for language-specific function extraction.
// Scanners never fail: malformed input degrades by omission (a function whose
// braces never balance is dropped, not reported).
type Scanner interface {
	// ScanFunctions extracts function records from source text. The filename
	// (base name, extension included) is only used to derive contract_name.
	ScanFunctions(filename string, text string) []FunctionRecord

	// Language returns the language tag used in contract_name.
	Language() string
}

// Language represents supported scanner languages.
type Language string

const (
	LanguageRust   Language = "rust"
	LanguageGo     Language = "go"
	LanguagePython Language = "python"
	LanguageMove   Language = "move"
	LanguageCairo  Language = "cairo"
)
