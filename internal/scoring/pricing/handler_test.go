// internal/scoring/pricing/handler_test.go
package pricing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-scoring/internal/common/logger"
	"marketplace-scoring/internal/models"
	"marketplace-scoring/internal/scoring/engine"
)

func floatPtr(v float64) *float64 { return &v }

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(&Config{RateFloor: 15, RateCeiling: 150}, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

func TestExecuteEstimatesWithinBand(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Project: models.Project{
			ID:             "p1",
			Category:       "machine-learning",
			SkillsRequired: json.RawMessage(`["machine-learning", "python", "aws"]`),
			EstimatedHours: floatPtr(120),
		},
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, output.EstimatedRate, 15.0)
	assert.LessOrEqual(t, output.EstimatedRate, 150.0)
	assert.Less(t, output.RateMin, output.EstimatedRate)
	assert.Greater(t, output.RateMax, output.EstimatedRate)
	assert.Equal(t, engine.ProvenanceLocal, output.Result.Provenance)
}

func TestExecuteHigherComplexityRaisesRate(t *testing.T) {
	h := newTestHandler(t)

	simple, err := h.Execute(context.Background(), &Input{
		Project: models.Project{
			ID:             "p1",
			Category:       "content-writing",
			SkillsRequired: json.RawMessage(`["copywriting"]`),
			EstimatedHours: floatPtr(10),
		},
	})
	require.NoError(t, err)

	complex, err := h.Execute(context.Background(), &Input{
		Project: models.Project{
			ID:             "p2",
			Category:       "machine-learning",
			SkillsRequired: json.RawMessage(`["machine-learning", "kubernetes", "rust", "aws"]`),
			EstimatedHours: floatPtr(300),
		},
	})
	require.NoError(t, err)

	assert.Greater(t, complex.EstimatedRate, simple.EstimatedRate)
}

func TestExecuteUnknownCategoryStillEstimates(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Project: models.Project{
			ID:             "p1",
			Category:       "underwater-basket-weaving",
			SkillsRequired: json.RawMessage(`["weaving"]`),
		},
	})

	require.NoError(t, err)
	assert.NotContains(t, output.Result.Factors, "base_rate_category")
	// market_trend is neutral-default and always present.
	assert.InDelta(t, 0.5, output.Result.Factors["market_trend"], 1e-9)
}

func TestExecuteInvalidInput(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)
}

func TestFactorSemantics(t *testing.T) {
	t.Run("complexity blends hours and skills", func(t *testing.T) {
		got := complexity(engine.EntitySignals{
			EstimatedHours: floatPtr(100),
			Skills:         engine.SkillSet([]string{"a", "b", "c", "d"}),
		})
		require.True(t, got.Present)
		assert.InDelta(t, (0.5+0.5)/2, got.Value, 1e-9)
	})

	t.Run("complexity absent with no signals", func(t *testing.T) {
		assert.False(t, complexity(engine.EntitySignals{}).Present)
	})

	t.Run("premium skill share", func(t *testing.T) {
		got := premiumSkillShare(engine.EntitySignals{
			Skills: engine.SkillSet([]string{"rust", "copywriting"}),
		})
		require.True(t, got.Present)
		assert.InDelta(t, 0.5, got.Value, 1e-9)
	})

	t.Run("weights cover factor set", func(t *testing.T) {
		names := make([]string, 0)
		for name := range Factors() {
			names = append(names, name)
		}
		assert.NoError(t, DefaultWeights().Validate(names))
	})
}
