// Package config handles XDG configuration directory and file paths.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application directory name.
	AppName = "daylist"

	// ServerFile stores the server base URL.
	ServerFile = "server.json"

	// TokenFile stores the bearer token.
	TokenFile = "token.json"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/daylist or $HOME/.config/daylist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ServerPath returns the path to the server settings file.
func (c *Config) ServerPath() string {
	return filepath.Join(c.Dir, ServerFile)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasServer checks if the server settings file exists.
func (c *Config) HasServer() bool {
	_, err := os.Stat(c.ServerPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

type serverSettings struct {
	BaseURL string `json:"base_url"`
}

type tokenSettings struct {
	Token string `json:"token"`
}

// ServerURL reads the stored server base URL.
func (c *Config) ServerURL() (string, error) {
	data, err := os.ReadFile(c.ServerPath())
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", ServerFile, err)
	}
	var s serverSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("invalid %s: %w", ServerFile, err)
	}
	if s.BaseURL == "" {
		return "", fmt.Errorf("no base_url in %s", ServerFile)
	}
	return strings.TrimRight(s.BaseURL, "/"), nil
}

// SaveServerURL stores the server base URL with mode 0600.
func (c *Config) SaveServerURL(baseURL string) error {
	data, err := json.MarshalIndent(serverSettings{BaseURL: baseURL}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.ServerPath(), data, 0600)
}

// Token reads the stored bearer token.
func (c *Config) Token() (string, error) {
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", TokenFile, err)
	}
	var t tokenSettings
	if err := json.Unmarshal(data, &t); err != nil {
		return "", fmt.Errorf("invalid %s: %w", TokenFile, err)
	}
	if t.Token == "" {
		return "", fmt.Errorf("no token in %s", TokenFile)
	}
	return t.Token, nil
}

// SaveToken stores the bearer token with mode 0600.
func (c *Config) SaveToken(token string) error {
	data, err := json.MarshalIndent(tokenSettings{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokenPath(), data, 0600)
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
