package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "ALTCAT"

// Settings are the process-level knobs read from ALTCAT_* variables.
type Settings struct {
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	UserAgent         string        `envconfig:"USER_AGENT" default:"altcat"`
	MaxDocumentBytes  int64         `envconfig:"MAX_DOCUMENT_BYTES" default:"16777216"`
	MaxIconBytes      int64         `envconfig:"MAX_ICON_BYTES" default:"4194304"`
	MaxPackageBytes   int64         `envconfig:"MAX_PACKAGE_BYTES" default:"0"`
	RequestsPerSecond float64       `envconfig:"REQUESTS_PER_SECOND" default:"0"`
	IconTTL           time.Duration `envconfig:"ICON_TTL" default:"0s"`
	Concurrency       int           `envconfig:"CONCURRENCY" default:"4"`
	ConfigDir         string        `envconfig:"CONFIG_DIR"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to read %s_* environment: %w", envPrefix, err)
	}
	return s, nil
}

// DefaultSettings mirrors the struct tag defaults.
func DefaultSettings() Settings {
	return Settings{
		HTTPTimeout:      30 * time.Second,
		UserAgent:        "altcat",
		MaxDocumentBytes: 16 << 20,
		MaxIconBytes:     4 << 20,
		Concurrency:      4,
	}
}
