// internal/scoring/fraud/factors.go
package fraud

import (
	"strings"
	"time"

	"marketplace-scoring/internal/scoring/engine"
)

// Domain is the registry name of this scoring domain.
const Domain = "fraud"

// Fraud factors are risk-oriented: higher values mean riskier, so the
// aggregate score is a risk score, not a quality score.
const (
	// accountAgeSaturation is the account age at which the age factor
	// bottoms out at zero risk.
	accountAgeSaturation = 365 * 24 * time.Hour
	// flagSaturation is the flag count at which flag_history saturates.
	flagSaturation = 5.0
	// brevitySaturation is the word count at which submission_brevity
	// bottoms out at zero risk.
	brevitySaturation = 50.0
)

// DefaultWeights is the production weight table for fraud-risk scoring.
func DefaultWeights() engine.Weights {
	return engine.Weights{
		"account_age":          0.30,
		"profile_completeness": 0.25,
		"submission_brevity":   0.15,
		"flag_history":         0.30,
	}
}

// Factors builds the fraud domain's entity providers. The subject entity is
// a freelancer profile.
func Factors(now func() time.Time) map[string]engine.EntityProvider {
	return map[string]engine.EntityProvider{
		"account_age":          accountAge(now),
		"profile_completeness": profileCompleteness,
		"submission_brevity":   submissionBrevity,
		"flag_history":         flagHistory,
	}
}

// accountAge scores newer accounts as riskier, falling linearly to zero risk
// at one year. An unparsable creation timestamp excludes the factor.
func accountAge(now func() time.Time) engine.EntityProvider {
	return func(entity engine.EntitySignals) engine.FactorScore {
		created, ok := parseTimestamp(entity.CreatedAt)
		if !ok {
			return engine.Absent()
		}
		age := now().Sub(created)
		if age < 0 {
			age = 0
		}
		return engine.Score(1.0 - float64(age)/float64(accountAgeSaturation))
	}
}

// profileCompleteness scores sparse profiles as riskier: each missing signal
// (bio, skills, rate, seniority, work history) adds risk.
func profileCompleteness(entity engine.EntitySignals) engine.FactorScore {
	filled := 0
	if strings.TrimSpace(entity.FreeText) != "" {
		filled++
	}
	if len(entity.Skills) > 0 {
		filled++
	}
	if entity.HourlyRate != nil {
		filled++
	}
	if entity.Experience != engine.LevelUnknown {
		filled++
	}
	if entity.TotalCount > 0 {
		filled++
	}
	return engine.Score(1.0 - float64(filled)/5.0)
}

// submissionBrevity scores terse submissions as riskier. An empty submission
// is maximum risk, not missing data.
func submissionBrevity(entity engine.EntitySignals) engine.FactorScore {
	words := len(strings.Fields(entity.FreeText))
	return engine.Score(1.0 - float64(words)/brevitySaturation)
}

// flagHistory converts the moderation flag count into risk, saturating at
// flagSaturation.
func flagHistory(entity engine.EntitySignals) engine.FactorScore {
	return engine.Score(float64(entity.FlagCount) / flagSaturation)
}

// parseTimestamp accepts the timestamp shapes the upstream stores emit.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
