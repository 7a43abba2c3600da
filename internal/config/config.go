// Package config resolves settings from environment variables, optionally
// seeded from the per-user config file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"codescan/internal/utils"
)

// Get returns the first non-empty environment variable among keys. Callers
// list the canonical name first and legacy aliases after it.
func Get(keys ...string) string {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// LoadFromUserConfig reads ~/.codescan/config.json and exports every entry as
// an environment variable, so Get sees file-backed settings the same way it
// sees real env vars. A missing file is not an error.
func LoadFromUserConfig() error {
	stateDir, err := utils.UserStateDir()
	if err != nil {
		// Best-effort: without a resolvable home there is nothing to load.
		return nil
	}

	file, err := os.Open(filepath.Join(stateDir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var cfg map[string]string
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return err
	}

	for key, value := range cfg {
		if value == "" {
			continue
		}
		// File values take precedence over the current environment.
		_ = os.Setenv(key, value)
	}
	return nil
}
