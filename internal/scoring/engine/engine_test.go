// internal/scoring/engine/engine_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineRejectsInvalidWeights(t *testing.T) {
	providers := map[string]PairProvider{
		"a": func(_, _ EntitySignals) FactorScore { return Score(1) },
		"b": func(_, _ EntitySignals) FactorScore { return Score(0) },
	}

	_, err := NewEngine("matching", providers, Weights{"a": 0.7, "b": 0.7}, "a")
	assert.ErrorContains(t, err, "sum to")

	_, err = NewEngine("matching", providers, Weights{"a": 1.0}, "a")
	assert.Error(t, err)
}

func TestEngineScorePair(t *testing.T) {
	providers := map[string]PairProvider{
		"overlap": func(s, c EntitySignals) FactorScore {
			return Score(Jaccard(s.Skills, c.Skills))
		},
		"rating": func(_, c EntitySignals) FactorScore {
			if c.RatingAvg == nil {
				return Absent()
			}
			return Score(*c.RatingAvg / 5.0)
		},
	}
	eng, err := NewEngine("matching", providers, Weights{"overlap": 0.5, "rating": 0.5}, "rating")
	require.NoError(t, err)

	subject := EntitySignals{Skills: SkillSet([]string{"go", "redis"})}
	rating := 4.0
	candidate := EntitySignals{Skills: SkillSet([]string{"go"}), RatingAvg: &rating}

	result := eng.ScorePair(subject, candidate)
	assert.InDelta(t, 0.5*0.5+0.8*0.5, result.Score, 1e-9)

	// Absent rating: overlap takes the full weight.
	result = eng.ScorePair(subject, EntitySignals{Skills: SkillSet([]string{"go"})})
	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.NotContains(t, result.Factors, "rating")
}

func TestEngineScoreEntity(t *testing.T) {
	providers := map[string]EntityProvider{
		"flags": func(e EntitySignals) FactorScore {
			return Score(float64(e.FlagCount) / 10.0)
		},
	}
	eng, err := NewEntityEngine("fraud", providers, Weights{"flags": 1.0}, "")
	require.NoError(t, err)

	result := eng.ScoreEntity(EntitySignals{FlagCount: 3})
	assert.InDelta(t, 0.3, result.Score, 1e-9)
}

func TestEngineIntrospect(t *testing.T) {
	providers := map[string]PairProvider{
		"b": func(_, _ EntitySignals) FactorScore { return Score(0) },
		"a": func(_, _ EntitySignals) FactorScore { return Score(0) },
	}
	eng, err := NewEngine("matching", providers, Weights{"a": 0.5, "b": 0.5}, "a")
	require.NoError(t, err)

	info := eng.Introspect()
	assert.Equal(t, "matching", info.Domain)
	assert.Equal(t, []string{"a", "b"}, info.Factors)
	assert.Equal(t, "a", info.SecondaryFactor)

	// Introspection must not expose internal state.
	info.Weights["a"] = 0.9
	assert.Equal(t, 0.5, eng.Introspect().Weights["a"])
}
