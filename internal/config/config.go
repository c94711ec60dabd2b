package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/altcat/internal/utils"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/altcat"
	configFile = "config.yml"

	DefaultSource      = "https://dunkeyyfong.click/repo.json"
	DefaultDownloadDir = "~/Downloads"
)

var ErrNotInitialized = errors.New("no configuration found. Please run 'altcat init' first")

// File is the on-disk part of the configuration.
type File struct {
	Sources     []string `yaml:"sources"`
	DownloadDir string   `yaml:"download_dir,omitempty"`
}

type Config struct {
	Settings Settings
	File     File
	Path     string
	Exists   bool
}

func Default() File {
	return File{
		Sources:     []string{DefaultSource},
		DownloadDir: DefaultDownloadDir,
	}
}

// Dir returns the directory holding config.yml.
func Dir(s Settings) (string, error) {
	if s.ConfigDir != "" {
		return ExpandHome(s.ConfigDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// Load reads the environment and, when present, config.yml. A missing file
// is not an error: Exists reports whether one was found.
func Load() (*Config, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	dir, err := Dir(settings)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Settings: settings, Path: filepath.Join(dir, configFile)}

	data, err := os.ReadFile(cfg.Path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg.File); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	cfg.Exists = true
	return cfg, nil
}

// Require is Load but fails when config.yml does not exist yet.
func Require() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if !cfg.Exists {
		return nil, ErrNotInitialized
	}
	return cfg, nil
}

func (c *Config) Save() error {
	if err := utils.CreateFile(c.Path, c.File, utils.FileTypeYAML, 0o644); err != nil {
		return err
	}
	c.Exists = true
	return nil
}

// AddSources appends uris as given. Duplicates are kept: each one becomes
// its own source slot.
func (c *Config) AddSources(uris ...string) {
	c.File.Sources = append(c.File.Sources, uris...)
}

// DownloadDir resolves the configured download directory.
func (c *Config) DownloadDir() (string, error) {
	dir := c.File.DownloadDir
	if dir == "" {
		dir = DefaultDownloadDir
	}
	return ExpandHome(dir)
}

// ExpandHome resolves a leading "~" against the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return filepath.Abs(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
