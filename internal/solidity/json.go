package solidity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const defaultDumpPath = "./out"

// Dump serializes a SourceUnit to <dir>/ast.json. Every snake_case field name
// is converted to camelCase during serialization; downstream JSON consumers
// depend on the camelCase keys.
func Dump(unit *SourceUnit, dir string) error {
	if dir == "" {
		dir = defaultDumpPath
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(unit)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "ast.json"), data, 0o644)
}

// MarshalJSON renders the tree with camelCase keys, the same shape the
// on-disk dump uses.
func (u *SourceUnit) MarshalJSON() ([]byte, error) {
	return json.Marshal(camelizeValue(u.fields()))
}

// camelizeValue rewrites every map key from snake_case to camelCase,
// recursing through nested maps and slices.
func camelizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[SnakeToCamel(k)] = camelizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = camelizeValue(inner)
		}
		return out
	default:
		return v
	}
}

// SnakeToCamel converts a snake_case identifier to camelCase.
func SnakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	if len(parts) == 1 {
		return s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
