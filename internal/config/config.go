package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production OOINet host the M2M API lives on.
const DefaultBaseURL = "https://ooinet.oceanobservatories.org"

// Config holds all runtime configuration for an ooingest run. It is built
// once in the command layer and passed into each component; nothing reads
// configuration from process globals.
type Config struct {
	CSVFile     string
	IngestType  string // "telemetered" or "recovered"
	BaseURL     string
	NetrcPath   string
	OutDir      string
	LogFormat   string // "text" or "json"
	AutoApprove bool
	Timeout     time.Duration // per-request HTTP timeout; 0 means no timeout
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	BaseURL string `yaml:"base_url"`
	Netrc   string `yaml:"netrc"`
	OutDir  string `yaml:"out_dir"`
}

// FileValues are optional settings read from a YAML config file. The command
// layer merges them into Config, letting explicitly set flags win.
type FileValues struct {
	BaseURL string
	Netrc   string
	OutDir  string
}

// FromFile reads a YAML config file and returns its values.
func FromFile(path string) (*FileValues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &FileValues{BaseURL: yc.BaseURL, Netrc: yc.Netrc, OutDir: yc.OutDir}, nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.CSVFile == "" {
		return fmt.Errorf("--csvfile is required")
	}
	if _, err := os.Stat(c.CSVFile); err != nil {
		return fmt.Errorf("csvfile not accessible: %w", err)
	}
	if c.IngestType != "telemetered" && c.IngestType != "recovered" {
		return fmt.Errorf("--ingest_type must be telemetered or recovered, got %q", c.IngestType)
	}
	return nil
}
