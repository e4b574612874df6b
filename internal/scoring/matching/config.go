// internal/scoring/matching/config.go
package matching

import (
	"time"

	"marketplace-scoring/internal/common/config"
)

// Config holds the matching domain's tunables.
type Config struct {
	MinScore        float64
	MaxResults      int
	CacheTTL        time.Duration
	BudgetTolerance float64
	ContractCeiling int
}

// LoadConfig builds the domain config from the application config, filling
// defaults for anything unset.
func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		MinScore:        cfg.Scoring.Matching.MinScore,
		MaxResults:      cfg.Scoring.Matching.MaxResults,
		CacheTTL:        time.Duration(cfg.Scoring.Matching.CacheTTL) * time.Millisecond,
		BudgetTolerance: cfg.Scoring.Matching.BudgetTolerance,
		ContractCeiling: cfg.Scoring.Matching.ContractCeiling,
	}

	if c.MaxResults <= 0 {
		c.MaxResults = 10
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 15 * time.Minute
	}
	if c.BudgetTolerance <= 0 {
		c.BudgetTolerance = 0.25
	}
	if c.ContractCeiling <= 0 {
		c.ContractCeiling = 5
	}

	return c
}
