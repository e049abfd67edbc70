// Package file loads and saves the pipeline configuration from a TOML
// file in the targetreport config directory.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/reachlab/targetreport/internal/core/domain"
)

// DefaultTargets are the proteins reported on when the config names none.
var DefaultTargets = []string{"TMPRSS2", "ACE2", "FURIN", "CTSB", "CTSL"}

// Config is the full pipeline configuration.
type Config struct {
	// Targets are the proteins to report on.
	Targets []string `toml:"targets"`

	// Misgroundings maps a target to raw-text strings that are known
	// bad groundings for it.
	Misgroundings map[string][]string `toml:"misgroundings"`

	StatementDB StatementDBConfig `toml:"statementdb"`
	Assay       AssayConfig       `toml:"assay"`
	Storage     StorageConfig     `toml:"storage"`
	Cache       CacheConfig       `toml:"cache"`
}

// StatementDBConfig configures the curated statement database connector.
type StatementDBConfig struct {
	BaseURL         string   `toml:"base_url"`
	APIKey          string   `toml:"api_key"`
	EvidenceLimit   int      `toml:"evidence_limit"`
	ExcludedSources []string `toml:"excluded_sources"`
}

// AssayConfig configures the assay dataset connector.
type AssayConfig struct {
	DatasetURL string `toml:"dataset_url"`
}

// StorageConfig configures report output.
type StorageConfig struct {
	// Bucket and Prefix address the object-storage destination.
	Bucket string `toml:"bucket"`
	Prefix string `toml:"prefix"`
	Region string `toml:"region"`

	// OutputDir is where reports are also written locally.
	OutputDir string `toml:"output_dir"`

	// DrugListFile names the ranked drug-list TSV.
	DrugListFile string `toml:"drug_list_file"`
}

// CacheConfig configures the local statement cache.
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	Dir      string `toml:"dir"`
	TTLHours int    `toml:"ttl_hours"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Targets:       append([]string(nil), DefaultTargets...),
		Misgroundings: domain.DefaultMisgroundings(),
		StatementDB: StatementDBConfig{
			EvidenceLimit:   10000,
			ExcludedSources: []string{"tas", "medscan"},
		},
		Storage: StorageConfig{
			Prefix:       "drugs_for_target",
			OutputDir:    "reports",
			DrugListFile: "drug_list.tsv",
		},
		Cache: CacheConfig{Enabled: true, TTLHours: 24},
	}
}

// DefaultPath returns the default config file path,
// ~/.targetreport/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".targetreport", "config.toml"), nil
}

// Load reads the configuration at path, merging it over the defaults. A
// missing file yields the defaults. If path is empty, DefaultPath is used.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Targets) == 0 {
		cfg.Targets = append([]string(nil), DefaultTargets...)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if
// needed. If path is empty, DefaultPath is used.
func Save(path string, cfg *Config) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
