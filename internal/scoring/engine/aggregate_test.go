// internal/scoring/engine/aggregate_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name            string
		scores          map[string]FactorScore
		weights         Weights
		expectedScore   float64
		expectedWeights Weights
	}{
		{
			name: "all factors present",
			scores: map[string]FactorScore{
				"a": Score(0.8),
				"b": Score(0.4),
			},
			weights:       Weights{"a": 0.6, "b": 0.4},
			expectedScore: 0.8*0.6 + 0.4*0.4,
			expectedWeights: Weights{
				"a": 0.6,
				"b": 0.4,
			},
		},
		{
			name: "absent factor weight redistributed",
			scores: map[string]FactorScore{
				"a": Score(0.5),
				"b": Absent(),
			},
			weights:       Weights{"a": 0.6, "b": 0.4},
			expectedScore: 0.5,
			expectedWeights: Weights{
				"a": 1.0,
			},
		},
		{
			name: "redistribution keeps proportions",
			scores: map[string]FactorScore{
				"a": Score(1.0),
				"b": Score(0.0),
				"c": Absent(),
			},
			weights:       Weights{"a": 0.3, "b": 0.3, "c": 0.4},
			expectedScore: 0.5,
			expectedWeights: Weights{
				"a": 0.5,
				"b": 0.5,
			},
		},
		{
			name: "all factors absent",
			scores: map[string]FactorScore{
				"a": Absent(),
				"b": Absent(),
			},
			weights:         Weights{"a": 0.6, "b": 0.4},
			expectedScore:   0,
			expectedWeights: Weights{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Aggregate(tt.scores, tt.weights)

			assert.InDelta(t, tt.expectedScore, result.Score, 1e-9)
			assert.Len(t, result.Weights, len(tt.expectedWeights))
			for name, w := range tt.expectedWeights {
				assert.InDelta(t, w, result.Weights[name], 1e-9, "weight %s", name)
			}
			assert.Equal(t, ProvenanceLocal, result.Provenance)
		})
	}
}

// The returned breakdown must reproduce the aggregate score exactly: the
// result carries effective weights, so score == Σ factors[i] * weights[i].
func TestAggregateSelfVerifying(t *testing.T) {
	scores := map[string]FactorScore{
		"skill_match":  Score(0.7),
		"success_rate": Score(0.9),
		"avg_rating":   Absent(),
		"availability": Score(0.2),
	}
	weights := Weights{
		"skill_match":  0.4,
		"success_rate": 0.3,
		"avg_rating":   0.2,
		"availability": 0.1,
	}

	result := Aggregate(scores, weights)

	recomputed := 0.0
	weightSum := 0.0
	for name, value := range result.Factors {
		recomputed += value * result.Weights[name]
		weightSum += result.Weights[name]
	}
	assert.InDelta(t, result.Score, recomputed, 1e-9)
	assert.InDelta(t, 1.0, weightSum, 1e-9)
	assert.NotContains(t, result.Factors, "avg_rating")
}
