package scanner

import (
	"regexp"
	"strings"
)

// aggregateMode selects the per-language meaning of contract_code. The
// asymmetry between languages is part of the downstream contract and must not
// be normalized.
type aggregateMode int

const (
	// aggregateBodies joins every extracted body in match order.
	aggregateBodies aggregateMode = iota
	// aggregateWholeFile uses the entire file text.
	aggregateWholeFile
	// aggregateNone leaves contract_code empty.
	aggregateNone
)

// braceLanguage configures the generic balanced-delimiter scan for one
// language. Each brace-delimited language is a thin configuration over the
// same algorithm rather than a separate implementation.
type braceLanguage struct {
	tag  Language
	ext  string
	head *regexp.Regexp

	// name derives the record name from the matched head and its submatches.
	name func(head string, groups []string) string
	// visibility inspects the matched head for a publicness keyword.
	visibility func(head string) string
	// modifiers inspects the matched head for qualifier keywords. Optional.
	modifiers func(head string) []string

	// declarations allows heads terminated by ';' instead of an opening
	// brace (no body follows).
	declarations bool
	aggregate    aggregateMode
}

// scanBraces runs the shared head-match plus brace-depth algorithm for a
// brace-delimited language. Delimiter counting is not comment- or
// string-literal aware: a brace inside a string corrupts the depth count and
// the affected match is dropped or over-extended. Accepted limitation.
func scanBraces(lang braceLanguage, filename, text string) []FunctionRecord {
	matches := lang.head.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	index := NewLineIndex(text)
	contractName := ContractName(filename, lang.ext, lang.tag, text)
	contractCode := aggregateCode(lang, text, matches)

	var functions []FunctionRecord
	for _, m := range matches {
		head := headText(text, m)
		groups := submatches(text, m)

		var content string
		var endLine, nodeCount int
		if lang.declarations && strings.HasSuffix(strings.TrimSpace(head), ";") {
			// Declaration-only function: the head is the whole record and
			// counts as a single line regardless of how it wraps.
			content = head
			endLine = index.LineAt(m[0])
			nodeCount = 1
		} else {
			end, ok := matchBody(text, m[1])
			if !ok {
				// Braces never balanced before end of text; drop the match
				// and keep scanning the rest of the file.
				continue
			}
			content = text[m[0]:end]
			endLine = index.LineAt(end)
			nodeCount = strings.Count(content, "\n") + 1
		}

		modifiers := []string{}
		if lang.modifiers != nil {
			modifiers = lang.modifiers(head)
		}

		functions = append(functions, FunctionRecord{
			Kind:         KindFunctionDefinition,
			Name:         lang.name(head, groups),
			StartLine:    index.LineAt(m[0]),
			EndLine:      endLine,
			Content:      content,
			ContractName: contractName,
			ContractCode: contractCode,
			Modifiers:    modifiers,
			Visibility:   lang.visibility(head),
			NodeCount:    nodeCount,
		})
	}
	return functions
}

// matchBody scans forward from the position just past the matched head, which
// already consumed the opening brace, and returns the offset one past the
// closing brace that balances it.
func matchBody(text string, from int) (int, bool) {
	depth := 1
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			return i + 1, true
		}
	}
	return 0, false
}

// aggregateCode builds the file-level contract_code field for the given mode.
func aggregateCode(lang braceLanguage, text string, matches [][]int) string {
	switch lang.aggregate {
	case aggregateWholeFile:
		return text
	case aggregateNone:
		return ""
	}

	var bodies []string
	for _, m := range matches {
		head := headText(text, m)
		if lang.declarations && strings.HasSuffix(strings.TrimSpace(head), ";") {
			bodies = append(bodies, head)
			continue
		}
		if end, ok := matchBody(text, m[1]); ok {
			bodies = append(bodies, text[m[0]:end])
		}
	}
	return strings.TrimSpace(strings.Join(bodies, "\n"))
}

// headText returns the matched head: the first capture group when the
// language's pattern defines one, otherwise the whole match.
func headText(text string, m []int) string {
	if len(m) >= 4 && m[2] >= 0 {
		return text[m[2]:m[3]]
	}
	return text[m[0]:m[1]]
}

const (
	visibilityPublic  = "public"
	visibilityPrivate = "private"
)

// keywordVisibility returns a predicate that reports "public" when the
// language's publicness keyword appears anywhere in the matched head.
func keywordVisibility(keyword string) func(string) string {
	return func(head string) string {
		if strings.Contains(head, keyword) {
			return visibilityPublic
		}
		return visibilityPrivate
	}
}

func alwaysPublic(string) string { return visibilityPublic }

func submatches(text string, m []int) []string {
	groups := make([]string, 0, len(m)/2)
	for i := 0; i < len(m); i += 2 {
		if m[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[m[i]:m[i+1]])
	}
	return groups
}
