// Package config loads and defaults the pipeline configuration.
//
// Configuration is an explicit value handed to the components that need it,
// never package state, so runs with different rule sets can coexist and be
// tested independently.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"coalign/core/align"
	"coalign/core/errors"
	"coalign/core/filter"
	"coalign/internal/discover"
)

// Config is the full pipeline configuration.
type Config struct {
	// Input is the root directory holding the source document folders.
	Input string `yaml:"input"`

	// Output is the root directory for aligned files, discarded tails, the
	// consolidated corpus, and the run report database.
	Output string `yaml:"output"`

	// ReportDB overrides the run report database path. Empty means
	// <output>/report.db.
	ReportDB string `yaml:"report_db"`

	// Archive enables the xz-compressed audit archive of discarded texts.
	Archive bool `yaml:"archive"`

	// Discover configures document-set discovery.
	Discover discover.Config `yaml:"discover"`

	// Filter configures paragraph filtering.
	Filter filter.Config `yaml:"filter"`

	// Align configures alignment policy.
	Align align.Config `yaml:"align"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Output:   "out",
		Discover: discover.DefaultConfig(),
		Filter:   filter.DefaultConfig(),
	}
}

// Load reads a YAML configuration file over the defaults. Fields omitted
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.NewIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.NewParse("config", path, err.Error())
	}

	if len(cfg.Discover.Patterns) == 0 {
		cfg.Discover.Patterns = discover.DefaultConfig().Patterns
	}
	return cfg, nil
}

// AlignedDir returns the directory for per-document aligned files.
func (c *Config) AlignedDir() string {
	return c.Output + "/aligned"
}

// DiscardedDir returns the directory for discarded-tail audit files.
func (c *Config) DiscardedDir() string {
	return c.Output + "/discarded"
}

// CorpusDir returns the directory for the consolidated corpus files.
func (c *Config) CorpusDir() string {
	return c.Output + "/corpus"
}

// ReportPath returns the run report database path.
func (c *Config) ReportPath() string {
	if c.ReportDB != "" {
		return c.ReportDB
	}
	return c.Output + "/report.db"
}

// ArchivePath returns the audit archive path.
func (c *Config) ArchivePath() string {
	return c.Output + "/discarded.tar.xz"
}
