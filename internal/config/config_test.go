package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGet(t *testing.T) {
	t.Setenv("CODESCAN_TEST_PRIMARY", "")
	t.Setenv("CODESCAN_TEST_ALIAS", "fallback")

	if got := Get("CODESCAN_TEST_PRIMARY", "CODESCAN_TEST_ALIAS"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}

	t.Setenv("CODESCAN_TEST_PRIMARY", "first")
	if got := Get("CODESCAN_TEST_PRIMARY", "CODESCAN_TEST_ALIAS"); got != "first" {
		t.Errorf("Get = %q, want first", got)
	}

	if got := Get("", "CODESCAN_TEST_MISSING"); got != "" {
		t.Errorf("Get = %q, want empty", got)
	}
}

func TestLoadFromUserConfig(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv("USERPROFILE", tmpHome)

	// Missing file is not an error.
	if err := LoadFromUserConfig(); err != nil {
		t.Fatalf("LoadFromUserConfig (missing): %v", err)
	}

	stateDir := filepath.Join(tmpHome, ".codescan")
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := `{"CODESCAN_TEST_FROM_FILE": "loaded", "CODESCAN_TEST_EMPTY": ""}`
	if err := os.WriteFile(filepath.Join(stateDir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("CODESCAN_TEST_FROM_FILE", "from-env")
	t.Setenv("CODESCAN_TEST_EMPTY", "untouched")

	if err := LoadFromUserConfig(); err != nil {
		t.Fatalf("LoadFromUserConfig: %v", err)
	}

	if got := os.Getenv("CODESCAN_TEST_FROM_FILE"); got != "loaded" {
		t.Errorf("File value should override env, got %q", got)
	}
	if got := os.Getenv("CODESCAN_TEST_EMPTY"); got != "untouched" {
		t.Errorf("Empty file values should be skipped, got %q", got)
	}
}
