package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"dbgdoc/internal/severity"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Module ModuleConfig `yaml:"module"`
	Audit  AuditConfig  `yaml:"audit"`
}

// ModuleConfig configures the diagnostic module used by the CLI.
type ModuleConfig struct {
	Name              string         `yaml:"name"`
	Verbosity         severity.Level `yaml:"verbosity"`          // level names; unknown names mean Critical
	ExceptionSeverity severity.Level `yaml:"exception_severity"` // level used when a guarded call fails
}

type AuditConfig struct {
	Root    string   `yaml:"root"`
	DB      string   `yaml:"db"`
	Ignore  []string `yaml:"ignore"`
	Workers int      `yaml:"workers"`
}

// Defaults returns a Config populated with default values.
func Defaults() *Config {
	return &Config{
		Module: ModuleConfig{
			Name:              "dbgdoc audit",
			Verbosity:         severity.High,
			ExceptionSeverity: severity.Critical,
		},
		Audit: AuditConfig{
			Root:    ".",
			DB:      "dbgdoc.db",
			Ignore:  []string{".git", "vendor", "node_modules", "testdata"},
			Workers: 4,
		},
	}
}

// LoadConfig reads path over the defaults, then applies environment
// overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Defaults()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// 3. Override with Environment Variables if present
	if v := os.Getenv("DBGDOC_VERBOSITY"); v != "" {
		cfg.Module.Verbosity = severity.RankOf(v)
	}
	if v := os.Getenv("DBGDOC_EXCEPTION_SEVERITY"); v != "" {
		cfg.Module.ExceptionSeverity = severity.RankOf(v)
	}
	if v := os.Getenv("DBGDOC_DB"); v != "" {
		cfg.Audit.DB = v
	}

	return cfg, nil
}
