package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DirName is the name of both the global (~/.baitscan) and per-repo config directories.
const DirName = ".baitscan"

// Config holds application configuration.
type Config struct {
	// TitleMaxChars is the maximum character count for titles that are persisted.
	// Analysis itself accepts any length; only storage is bounded.
	TitleMaxChars int `json:"title_max_chars"`

	// TagMaxItems is the maximum number of titles accepted by one bulk tagging call.
	TagMaxItems int `json:"tag_max_items"`

	// TagWorkers bounds how many titles are classified concurrently during bulk tagging.
	TagWorkers int `json:"tag_workers"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of type names to disable entirely.
	// Known types: "clickbait". Unknown type names are logged as warnings.
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TitleMaxChars: 1000,
		TagMaxItems:   500,
		TagWorkers:    8,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.baitscan.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.baitscan) and repo (.baitscan) directories.
// Repo config is found by walking upward from startDir to find the nearest .baitscan/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .baitscan/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw returns a zero-valued config (not defaults) if the file doesn't exist.
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	return &Config{
		TitleMaxChars:  firstPositive(overlay.TitleMaxChars, base.TitleMaxChars),
		TagMaxItems:    firstPositive(overlay.TagMaxItems, base.TagMaxItems),
		TagWorkers:     firstPositive(overlay.TagWorkers, base.TagWorkers),
		DBMaxOpenConns: firstPositive(overlay.DBMaxOpenConns, base.DBMaxOpenConns),
		DBMaxIdleConns: firstPositive(overlay.DBMaxIdleConns, base.DBMaxIdleConns),
		DisabledTools:  mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
		DisabledTypes:  mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes),
	}
}

// firstPositive returns overlay if set, else base. Negative values count as unset.
func firstPositive(overlay, base int) int {
	if overlay > 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
