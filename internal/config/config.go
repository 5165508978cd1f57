// Package config resolves settings from environment variables and the user
// config file at ~/.docwriter/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Get returns the first non-empty environment variable from the provided keys.
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

// LoadFromUserConfig merges ~/.docwriter/config.json into the environment so
// settings from that file are visible through Get. File values take
// precedence over existing env vars.
func LoadFromUserConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		// Best-effort: if we can't resolve home, just skip file loading.
		return nil
	}

	configPath := filepath.Join(home, ".docwriter", "config.json")
	file, err := os.Open(configPath)
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
		_ = os.Setenv(key, value)
	}

	return nil
}

// Settings are the user-facing preferences of the documentation generator.
type Settings struct {
	Style            string // documentation style override; empty or "auto" defers to the language default
	IncludeExamples  bool
	IncludeTypes     bool
	ResponseLanguage string // preferred human language for the generated descriptions
	UseSharedPool    bool
	Model            string
	BaseURL          string
}

// LoadSettings reads all preferences from the environment (after
// LoadFromUserConfig, this includes the user config file).
func LoadSettings() Settings {
	return Settings{
		Style:            Get("DOCWRITER_STYLE", "documentation_style"),
		IncludeExamples:  getBool("DOCWRITER_INCLUDE_EXAMPLES", "include_examples"),
		IncludeTypes:     getBool("DOCWRITER_INCLUDE_TYPES", "include_types"),
		ResponseLanguage: Get("DOCWRITER_RESPONSE_LANGUAGE", "response_language"),
		UseSharedPool:    getBoolDefault(true, "DOCWRITER_USE_SHARED_POOL", "use_shared_pool"),
		Model:            Get("DOCWRITER_MODEL", "OPENAI_MODEL", "openai_model"),
		BaseURL:          Get("DOCWRITER_BASE_URL", "OPENAI_BASE_URL", "openai_base_url"),
	}
}

// APIKeyFromEnv returns a personal API key configured via the environment.
func APIKeyFromEnv() string {
	return Get("DOCWRITER_API_KEY", "OPENAI_API_KEY", "openai_key")
}

func getBool(keys ...string) bool {
	return getBoolDefault(false, keys...)
}

func getBoolDefault(def bool, keys ...string) bool {
	raw := Get(keys...)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}
