// internal/scoring/pricing/config.go
package pricing

import "marketplace-scoring/internal/common/config"

// Config holds the pricing domain's tunables. The score in [0,1] is mapped
// linearly onto the [RateFloor, RateCeiling] hourly band.
type Config struct {
	RateFloor   float64
	RateCeiling float64
}

// LoadConfig builds the domain config from the application config, filling
// defaults for anything unset.
func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		RateFloor:   cfg.Scoring.Pricing.RateFloor,
		RateCeiling: cfg.Scoring.Pricing.RateCeiling,
	}
	if c.RateFloor <= 0 {
		c.RateFloor = 15
	}
	if c.RateCeiling <= c.RateFloor {
		c.RateCeiling = 150
	}
	return c
}
