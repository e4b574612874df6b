// internal/scoring/pricing/factors.go
package pricing

import (
	"marketplace-scoring/internal/scoring/engine"
)

// Domain is the registry name of this scoring domain.
const Domain = "pricing"

// categoryBaselines maps project categories to a normalized baseline rate
// position. Unlisted categories exclude the factor rather than guessing.
var categoryBaselines = map[string]float64{
	"data-entry":       0.10,
	"customer-support": 0.15,
	"content-writing":  0.25,
	"design":           0.40,
	"marketing":        0.45,
	"web-development":  0.55,
	"mobile":           0.65,
	"devops":           0.75,
	"data-science":     0.85,
	"machine-learning": 0.95,
}

// premiumSkills are the skills that push a project toward the top of the
// rate band.
var premiumSkills = map[string]struct{}{
	"machine-learning": {},
	"kubernetes":       {},
	"terraform":        {},
	"security":         {},
	"blockchain":       {},
	"rust":             {},
	"golang":           {},
	"aws":              {},
}

const (
	// complexityHoursScale is the estimated-hours mark at which the
	// complexity factor saturates at 1.0.
	complexityHoursScale = 200.0
	// complexitySkillsScale is the required-skill count at which the skill
	// half of the complexity factor saturates.
	complexitySkillsScale = 8.0
	// marketTrendNeutral stands in until a live market feed exists; the
	// factor is kept in the table so the weights stay stable when one does.
	marketTrendNeutral = 0.5
)

// DefaultWeights is the production weight table for project rate estimation.
func DefaultWeights() engine.Weights {
	return engine.Weights{
		"base_rate_category": 0.35,
		"complexity":         0.30,
		"premium_skills":     0.20,
		"market_trend":       0.15,
	}
}

// Factors builds the pricing domain's entity providers. The subject entity
// is a project.
func Factors() map[string]engine.EntityProvider {
	return map[string]engine.EntityProvider{
		"base_rate_category": baseRateCategory,
		"complexity":         complexity,
		"premium_skills":     premiumSkillShare,
		"market_trend":       marketTrend,
	}
}

// baseRateCategory positions the project by its category's baseline rate.
func baseRateCategory(entity engine.EntitySignals) engine.FactorScore {
	baseline, ok := categoryBaselines[entity.Category]
	if !ok {
		return engine.Absent()
	}
	return engine.Score(baseline)
}

// complexity blends estimated effort and the breadth of required skills.
// With neither signal the factor is excluded.
func complexity(entity engine.EntitySignals) engine.FactorScore {
	hasHours := entity.EstimatedHours != nil && *entity.EstimatedHours > 0
	hasSkills := len(entity.Skills) > 0
	if !hasHours && !hasSkills {
		return engine.Absent()
	}

	var parts, total float64
	if hasHours {
		total += engine.Clamp01(*entity.EstimatedHours / complexityHoursScale)
		parts++
	}
	if hasSkills {
		total += engine.Clamp01(float64(len(entity.Skills)) / complexitySkillsScale)
		parts++
	}
	return engine.Score(total / parts)
}

// premiumSkillShare is the fraction of required skills drawn from the
// premium set. No required skills excludes the factor.
func premiumSkillShare(entity engine.EntitySignals) engine.FactorScore {
	if len(entity.Skills) == 0 {
		return engine.Absent()
	}
	hits := 0
	for skill := range entity.Skills {
		if _, ok := premiumSkills[skill]; ok {
			hits++
		}
	}
	return engine.Score(float64(hits) / float64(len(entity.Skills)))
}

// marketTrend is a neutral-default factor: always present, never absent,
// never triggers redistribution.
func marketTrend(_ engine.EntitySignals) engine.FactorScore {
	return engine.Score(marketTrendNeutral)
}
