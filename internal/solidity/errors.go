package solidity

import "fmt"

// SyntaxError describes one offending token with its 1-based position.
type SyntaxError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// ParserError is returned by Parse in non-tolerant mode when the source
// contains syntax errors. Its message carries the first error; Errors holds
// the full list.
type ParserError struct {
	Errors []SyntaxError
}

func (e *ParserError) Error() string {
	if len(e.Errors) == 0 {
		return "parser error"
	}
	first := e.Errors[0]
	return fmt.Sprintf("%s (%d:%d)", first.Message, first.Line, first.Column)
}
