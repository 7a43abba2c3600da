package scanner

import (
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// ContentHash returns a decimal string of a 64-bit xxh3 digest of text. The
// digest is stable across processes and runs, which keeps contract names
// reproducible for identical file content.
func ContentHash(text string) string {
	return strconv.FormatUint(xxh3.HashString(text), 10)
}

// ContractName derives the grouping identifier for all records extracted from
// one file: the file name with its extension replaced by the language tag
// plus the content hash, e.g. "token.rs" -> "token_rust1234...".
func ContractName(filename string, ext string, tag Language, text string) string {
	return strings.ReplaceAll(filename, ext, "_"+string(tag)+ContentHash(text))
}
