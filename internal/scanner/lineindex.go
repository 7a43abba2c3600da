package scanner

import (
	"sort"
	"strings"
)

// LineIndex maps character offsets in a text to 1-based line numbers. It is
// built once per scan and shared by all offset lookups for that text.
type LineIndex struct {
	starts []int
}

// NewLineIndex records the cumulative start offset of every line in text.
// Line 0 starts at offset 0; each following line starts after the previous
// line's content plus one separator character.
func NewLineIndex(text string) *LineIndex {
	lines := strings.Split(text, "\n")
	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
	}
	return &LineIndex{starts: starts}
}

// LineAt returns the 1-based line number containing the given character
// offset. Offsets past the end of the text saturate to the last line.
func (li *LineIndex) LineAt(offset int) int {
	i := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
	line := i - 1
	if line < 0 {
		line = 0
	}
	return line + 1
}

// LineCount returns the number of lines in the indexed text.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}
