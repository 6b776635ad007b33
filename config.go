package sina

import (
	"github.com/caarlos0/env/v10"
	"github.com/pkg/errors"

	"github.com/theplant/sina/condition"
)

// Config holds the session flags consulted by a Filter.
type Config struct {
	// FolderMode enables browsing hierarchical data sources as folders.
	FolderMode bool `env:"SINA_FOLDER_MODE" envDefault:"false"`

	// InitialFolderSearch marks the first query of a folder session, before
	// any folder condition exists.
	InitialFolderSearch bool `env:"SINA_INITIAL_FOLDER_SEARCH" envDefault:"false"`

	// Limits for AutoInsertCondition. Zero values mean unlimited.
	MaxDepth      int `env:"SINA_MAX_DEPTH" envDefault:"0"`
	MaxConditions int `env:"SINA_MAX_CONDITIONS" envDefault:"0"`
	MaxOrBranches int `env:"SINA_MAX_OR_BRANCHES" envDefault:"0"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse sina config from environment")
	}
	return cfg, nil
}

// Limits returns the complexity limits of cfg, or nil when none is set.
func (cfg Config) Limits() *condition.ComplexityLimits {
	if cfg.MaxDepth <= 0 && cfg.MaxConditions <= 0 && cfg.MaxOrBranches <= 0 {
		return nil
	}
	return &condition.ComplexityLimits{
		MaxDepth:           cfg.MaxDepth,
		MaxTotalConditions: cfg.MaxConditions,
		MaxOrBranches:      cfg.MaxOrBranches,
	}
}
