package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"codescan/internal/solidity"
)

// GrammarParser is the capability the dispatcher falls back to when no
// lexical scanner claims a path: a grammar-backed parser producing a full
// syntax tree. Satisfied today by the Solidity front-end; other languages can
// later supply a real grammar parser behind the same seam without changing
// callers.
type GrammarParser interface {
	Parse(text string) (*solidity.SourceUnit, error)
}

// Result is the outcome of dispatching one file. Lexical scanners fill
// Functions; the grammar path fills AST instead. Callers must be prepared
// for either shape.
type Result struct {
	Functions []FunctionRecord
	AST       *solidity.SourceUnit
}

type route struct {
	ext     string
	scanner Scanner
}

// Dispatcher routes a file to the scanner matching its extension, or to the
// grammar parser when no extension matches.
type Dispatcher struct {
	routes   []route
	fallback GrammarParser
}

// NewDispatcher creates a dispatcher with all lexical scanners registered and
// the given grammar parser as the default path.
func NewDispatcher(fallback GrammarParser) *Dispatcher {
	return &Dispatcher{
		routes: []route{
			{".rs", NewRustScanner()},
			{".py", NewPythonScanner()},
			{".move", NewMoveScanner()},
			{".cairo", NewCairoScanner()},
			{".go", NewGoScanner()},
		},
		fallback: fallback,
	}
}

// Scan extracts function records from one file's text. Extension matching is
// substring containment on the whole path in fixed priority order, not suffix
// matching; a path like "a.py/readme" still dispatches to the Python scanner.
// Preserved for compatibility with existing consumers.
func (d *Dispatcher) Scan(path string, text string) (*Result, error) {
	filename := filepath.Base(path)
	for _, r := range d.routes {
		if strings.Contains(path, r.ext) {
			return &Result{Functions: r.scanner.ScanFunctions(filename, text)}, nil
		}
	}

	if d.fallback == nil {
		return nil, fmt.Errorf("no scanner for %s and no grammar parser configured", path)
	}
	unit, err := d.fallback.Parse(text)
	if err != nil {
		return nil, err
	}
	return &Result{AST: unit}, nil
}

// ScannerExtensions returns the extensions handled by lexical scanners, in
// dispatch priority order.
func (d *Dispatcher) ScannerExtensions() []string {
	exts := make([]string, 0, len(d.routes))
	for _, r := range d.routes {
		exts = append(exts, r.ext)
	}
	return exts
}

// SolidityParser adapts the solidity package to the GrammarParser capability.
type SolidityParser struct {
	opts solidity.Options
}

// NewSolidityParser creates the default grammar parser with the given options.
func NewSolidityParser(opts solidity.Options) *SolidityParser {
	return &SolidityParser{opts: opts}
}

func (p *SolidityParser) Parse(text string) (*solidity.SourceUnit, error) {
	return solidity.Parse(text, p.opts)
}
