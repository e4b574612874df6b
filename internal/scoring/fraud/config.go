// internal/scoring/fraud/config.go
package fraud

import "marketplace-scoring/internal/common/config"

// Config holds the fraud domain's risk-level cut points.
type Config struct {
	MediumThreshold float64
	HighThreshold   float64
}

// LoadConfig builds the domain config from the application config, filling
// defaults for anything unset.
func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		MediumThreshold: cfg.Scoring.Fraud.MediumThreshold,
		HighThreshold:   cfg.Scoring.Fraud.HighThreshold,
	}
	if c.MediumThreshold <= 0 {
		c.MediumThreshold = 0.33
	}
	if c.HighThreshold <= c.MediumThreshold {
		c.HighThreshold = 0.66
	}
	return c
}
