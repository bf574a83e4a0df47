package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// DefaultThemeColor is used whenever theme_color is absent or
	// malformed.
	DefaultThemeColor = "#FFD700"

	defaultUserAgent   = "wikitea/0.1 (terminal reader)"
	defaultSearchLimit = 10
)

type Config struct {
	ThemeColor  string `json:"theme_color"`
	UserAgent   string `json:"user_agent"`
	SearchLimit int    `json:"search_limit"`
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wikitea"), nil
}

func configPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func DBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wikitea.db"), nil
}

func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := &Config{}
		cfg.ApplyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero or malformed fields with their defaults.
func (c *Config) ApplyDefaults() {
	if !ValidThemeColor(c.ThemeColor) {
		c.ThemeColor = DefaultThemeColor
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.SearchLimit == 0 {
		c.SearchLimit = defaultSearchLimit
	}
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	data = append(data, '\n')
	return os.WriteFile(path, data, 0600)
}

// ValidThemeColor reports whether s is a 7-character #RRGGBB hex color.
func ValidThemeColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// ThemeColor reads just the theme color from the config file, falling
// back to the default on any error. The watcher uses this so a
// half-written or malformed file never flips the theme.
func ThemeColor() string {
	cfg, err := Load()
	if err != nil {
		return DefaultThemeColor
	}
	return cfg.ThemeColor
}
