// internal/scoring/matching/factors.go
package matching

import (
	"marketplace-scoring/internal/scoring/engine"
)

// Factors builds the matching domain's pair providers. Each provider is pure;
// anything it cannot compute it reports as absent rather than zero, except
// response_rate which is deliberately neutral for new users.
func Factors(cfg *Config) map[string]engine.PairProvider {
	return map[string]engine.PairProvider{
		"skill_match":      skillMatch,
		"success_rate":     successRate,
		"avg_rating":       avgRating,
		"budget_match":     budgetMatch(cfg.BudgetTolerance),
		"experience_match": experienceMatch,
		"availability":     availability(cfg.ContractCeiling),
		"response_rate":    responseRate,
	}
}

// skillMatch is the Jaccard similarity of required and candidate skill sets.
// An empty union scores 0, it does not go absent: a project with required
// skills and a candidate with none is a real mismatch.
func skillMatch(subject, candidate engine.EntitySignals) engine.FactorScore {
	return engine.Score(engine.Jaccard(subject.Skills, candidate.Skills))
}

// successRate is completed over total engagements. No history at all means
// the factor is excluded and its weight redistributed.
func successRate(_, candidate engine.EntitySignals) engine.FactorScore {
	if candidate.TotalCount <= 0 {
		return engine.Absent()
	}
	return engine.Score(float64(candidate.CompletedCount) / float64(candidate.TotalCount))
}

// avgRating normalizes the mean rating by the 5-point scale.
func avgRating(_, candidate engine.EntitySignals) engine.FactorScore {
	if candidate.RatingAvg == nil {
		return engine.Absent()
	}
	return engine.Score(*candidate.RatingAvg / 5.0)
}

// budgetMatch compares the candidate's expected cost against the requested
// budget range: 1.0 inside the range, degrading linearly to 0 across the
// tolerance band outside it. Expected cost is rate x estimated hours when
// hours are known, otherwise the stated rate against a per-hour range.
func budgetMatch(tolerance float64) engine.PairProvider {
	return func(subject, candidate engine.EntitySignals) engine.FactorScore {
		if candidate.HourlyRate == nil {
			return engine.Absent()
		}
		if subject.BudgetMin == nil && subject.BudgetMax == nil {
			return engine.Absent()
		}

		cost := *candidate.HourlyRate
		if subject.EstimatedHours != nil && *subject.EstimatedHours > 0 {
			cost = *candidate.HourlyRate * *subject.EstimatedHours
		}

		lo := 0.0
		if subject.BudgetMin != nil {
			lo = *subject.BudgetMin
		}
		hi := lo
		if subject.BudgetMax != nil {
			hi = *subject.BudgetMax
		}
		if hi < lo {
			lo, hi = hi, lo
		}

		if cost >= lo && cost <= hi {
			return engine.Score(1.0)
		}

		// Distance outside the range, as a fraction of the nearer bound.
		var overshoot float64
		if cost > hi {
			if hi <= 0 {
				return engine.Score(0)
			}
			overshoot = (cost - hi) / hi
		} else {
			if lo <= 0 {
				return engine.Score(0)
			}
			overshoot = (lo - cost) / lo
		}
		if tolerance <= 0 {
			return engine.Score(0)
		}
		return engine.Score(1.0 - overshoot/tolerance)
	}
}

// experienceMatch maps the ordinal distance between required and candidate
// seniority onto a fixed lookup: exact 1.0, one level off 0.5, further 0.0.
// Unknown on either side excludes the factor.
func experienceMatch(subject, candidate engine.EntitySignals) engine.FactorScore {
	if subject.Experience == engine.LevelUnknown || candidate.Experience == engine.LevelUnknown {
		return engine.Absent()
	}
	distance := int(subject.Experience) - int(candidate.Experience)
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return engine.Score(1.0)
	case 1:
		return engine.Score(0.5)
	default:
		return engine.Score(0.0)
	}
}

// availability degrades from 1.0 toward 0 as the candidate's active-contract
// load approaches the configured ceiling.
func availability(ceiling int) engine.PairProvider {
	return func(_, candidate engine.EntitySignals) engine.FactorScore {
		if ceiling <= 0 {
			return engine.Absent()
		}
		return engine.Score(1.0 - float64(candidate.ActiveContracts)/float64(ceiling))
	}
}

// responseRate is the proposal-acceptance ratio. Unlike success_rate, no
// history yields a neutral 0.5: the factor is low-weight and excluding it
// would destabilize ranking for new users.
func responseRate(_, candidate engine.EntitySignals) engine.FactorScore {
	if candidate.ProposalsSent <= 0 {
		return engine.Score(0.5)
	}
	return engine.Score(float64(candidate.ProposalsAccepted) / float64(candidate.ProposalsSent))
}
