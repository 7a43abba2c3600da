package scanner

import (
	"regexp"
	"strings"
)

var pythonHeadRegex = regexp.MustCompile(`def\s+(\w+)\s*\((.*?)\)(?:\s*->\s*(\w+))?\s*:`)

// PythonScanner extracts functions from Python source. Bodies have no
// explicit delimiters: a function spans from its header line to the last
// line before a non-blank line whose indentation drops back to the header's
// level, or end of file. Blank lines are always part of the span.
type PythonScanner struct{}

// NewPythonScanner creates a new Python scanner
func NewPythonScanner() *PythonScanner {
	return &PythonScanner{}
}

// Language returns the language tag
func (s *PythonScanner) Language() string {
	return string(LanguagePython)
}

// ScanFunctions extracts function records from Python source code. The result
// is never empty for non-empty input: when no header pattern matches, a
// single fallback record covers the entire file.
func (s *PythonScanner) ScanFunctions(filename string, text string) []FunctionRecord {
	contractName := ContractName(filename, ".py", LanguagePython, text)
	contractCode := strings.TrimSpace(text)
	lines := strings.Split(text, "\n")

	matches := pythonHeadRegex.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []FunctionRecord{wholeFileRecord(filename, contractName, contractCode, len(lines))}
	}

	index := NewLineIndex(text)
	var functions []FunctionRecord
	for _, m := range matches {
		headerLine := index.LineAt(m[0]) - 1
		indent := indentWidth(lines[headerLine])

		endLine := headerLine + 1
		for endLine < len(lines) {
			line := lines[endLine]
			if strings.TrimSpace(line) != "" && indentWidth(line) <= indent {
				break
			}
			endLine++
		}
		endLine-- // last line still inside the body

		content := strings.Join(lines[headerLine:endLine+1], "\n")
		functions = append(functions, FunctionRecord{
			Kind:         KindFunctionDefinition,
			Name:         "function" + text[m[2]:m[3]],
			StartLine:    headerLine + 1,
			EndLine:      endLine + 1,
			Content:      content,
			ContractName: contractName,
			ContractCode: contractCode,
			Modifiers:    []string{},
			Visibility:   visibilityPublic,
			NodeCount:    strings.Count(content, "\n") + 1,
		})
	}
	return functions
}

// wholeFileRecord is the fallback for files where no function header matched:
// one record spanning the whole file, named from the file's base name.
func wholeFileRecord(filename, contractName, contractCode string, lineCount int) FunctionRecord {
	base, _, _ := strings.Cut(filename, ".")
	return FunctionRecord{
		Kind:         KindFunctionDefinition,
		Name:         "function" + base + "all",
		StartLine:    1,
		EndLine:      lineCount,
		Content:      contractCode,
		ContractName: contractName,
		ContractCode: contractCode,
		Modifiers:    []string{},
		Visibility:   visibilityPublic,
		NodeCount:    lineCount,
	}
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
