package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	".venv":        true,
}

var languageExts = map[string]string{
	".rs":    "rust",
	".go":    "go",
	".py":    "python",
	".move":  "move",
	".cairo": "cairo",
	".sol":   "solidity",
}

// GetAllSourceFiles walks a project tree and returns every file with a
// supported extension, honoring a minimal subset of root .gitignore rules.
func GetAllSourceFiles(rootPath string) ([]string, error) {
	var files []string
	ignorePatterns := loadGitIgnorePatterns(rootPath)
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			if isIgnoredPath(relPath, ignorePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if isIgnoredPath(relPath, ignorePatterns) {
			return nil
		}

		ext := filepath.Ext(path)
		if _, ok := languageExts[ext]; ok {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// DetectLanguage maps a file's extension to its language name, or "" when the
// extension is not supported.
func DetectLanguage(path string) string {
	ext := filepath.Ext(path)
	return languageExts[ext]
}

// DecodeLenient converts raw file bytes to a string, replacing invalid UTF-8
// sequences instead of failing. Scanning proceeds on the best-effort text.
func DecodeLenient(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}

// HashContent returns the hex-encoded SHA-256 of content. Used for file
// change detection and Qdrant point IDs, not for contract names.
func HashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// NormalizeProjectRoot resolves a project root to a cleaned absolute path.
func NormalizeProjectRoot(rootPath string) (string, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// ComputeProjectID derives a stable identifier for a project from its
// normalized root path.
func ComputeProjectID(rootPath string) (string, error) {
	normalized, err := NormalizeProjectRoot(rootPath)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256([]byte(filepath.ToSlash(normalized)))
	return hex.EncodeToString(hash[:])[:16], nil
}

// UserStateDir returns (and creates) the per-user state directory.
func UserStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".codescan")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// loadGitIgnorePatterns reads the root-level .gitignore (if present) and
// returns a list of non-empty, non-comment patterns.
func loadGitIgnorePatterns(rootPath string) []string {
	data, err := os.ReadFile(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// isIgnoredPath applies a minimal subset of .gitignore semantics suitable for
// skipping heavy directories and common file patterns. Patterns are treated
// as root-relative against relPath.
func isIgnoredPath(relPath string, patterns []string) bool {
	relPath = strings.TrimPrefix(relPath, "./")
	relPath = strings.TrimSpace(relPath)
	if relPath == "" {
		return false
	}

	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		p := strings.TrimSpace(pattern)
		if p == "" {
			continue
		}

		p = filepath.ToSlash(p)

		// Directory-style pattern, e.g. "node_modules/".
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimSuffix(p, "/")
			dir = strings.TrimPrefix(dir, "./")
			if relPath == dir || strings.HasPrefix(relPath, dir+"/") {
				return true
			}
			continue
		}

		if ok, _ := filepath.Match(p, relPath); ok {
			return true
		}

		// Bare name pattern like "target" without slashes or wildcards –
		// treat as directory segment match anywhere in the path.
		if !strings.Contains(p, "/") && !strings.ContainsAny(p, "*?[") {
			segment := "/" + p + "/"
			if strings.Contains("/"+relPath+"/", segment) {
				return true
			}
		}
	}

	return false
}
