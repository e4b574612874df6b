// internal/scoring/matching/factors_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace-scoring/internal/scoring/engine"
)

func floatPtr(v float64) *float64 { return &v }

func TestSkillMatch(t *testing.T) {
	subject := engine.EntitySignals{Skills: engine.SkillSet([]string{"go", "redis", "kafka"})}
	candidate := engine.EntitySignals{Skills: engine.SkillSet([]string{"go", "python", "django"})}

	got := skillMatch(subject, candidate)
	assert.True(t, got.Present)
	assert.InDelta(t, 1.0/5.0, got.Value, 1e-9)

	// Empty union scores 0, it is a real signal rather than unknown data.
	got = skillMatch(engine.EntitySignals{}, engine.EntitySignals{})
	assert.True(t, got.Present)
	assert.Equal(t, 0.0, got.Value)
}

func TestSuccessRate(t *testing.T) {
	got := successRate(engine.EntitySignals{}, engine.EntitySignals{CompletedCount: 9, TotalCount: 10})
	assert.True(t, got.Present)
	assert.InDelta(t, 0.9, got.Value, 1e-9)

	// No history: excluded, never zero.
	got = successRate(engine.EntitySignals{}, engine.EntitySignals{TotalCount: 0})
	assert.False(t, got.Present)
}

func TestAvgRating(t *testing.T) {
	got := avgRating(engine.EntitySignals{}, engine.EntitySignals{RatingAvg: floatPtr(4.5)})
	assert.True(t, got.Present)
	assert.InDelta(t, 0.9, got.Value, 1e-9)

	got = avgRating(engine.EntitySignals{}, engine.EntitySignals{})
	assert.False(t, got.Present)
}

func TestBudgetMatch(t *testing.T) {
	provider := budgetMatch(0.25)

	tests := []struct {
		name      string
		subject   engine.EntitySignals
		candidate engine.EntitySignals
		present   bool
		value     float64
	}{
		{
			name: "cost inside budget range",
			subject: engine.EntitySignals{
				BudgetMin:      floatPtr(1000),
				BudgetMax:      floatPtr(2000),
				EstimatedHours: floatPtr(20),
			},
			candidate: engine.EntitySignals{HourlyRate: floatPtr(75)},
			present:   true,
			value:     1.0,
		},
		{
			name: "cost above budget inside tolerance",
			subject: engine.EntitySignals{
				BudgetMin:      floatPtr(1000),
				BudgetMax:      floatPtr(2000),
				EstimatedHours: floatPtr(20),
			},
			// 110/h x 20h = 2200, 10% over a 25% tolerance band.
			candidate: engine.EntitySignals{HourlyRate: floatPtr(110)},
			present:   true,
			value:     1.0 - 0.1/0.25,
		},
		{
			name: "cost far above budget",
			subject: engine.EntitySignals{
				BudgetMin:      floatPtr(1000),
				BudgetMax:      floatPtr(2000),
				EstimatedHours: floatPtr(20),
			},
			candidate: engine.EntitySignals{HourlyRate: floatPtr(500)},
			present:   true,
			value:     0.0,
		},
		{
			name: "no rate stated",
			subject: engine.EntitySignals{
				BudgetMin: floatPtr(1000),
				BudgetMax: floatPtr(2000),
			},
			candidate: engine.EntitySignals{},
			present:   false,
		},
		{
			name:      "no budget stated",
			subject:   engine.EntitySignals{},
			candidate: engine.EntitySignals{HourlyRate: floatPtr(50)},
			present:   false,
		},
		{
			name: "stated rate against hourly range when hours unknown",
			subject: engine.EntitySignals{
				BudgetMin: floatPtr(40),
				BudgetMax: floatPtr(80),
			},
			candidate: engine.EntitySignals{HourlyRate: floatPtr(60)},
			present:   true,
			value:     1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := provider(tt.subject, tt.candidate)
			assert.Equal(t, tt.present, got.Present)
			if tt.present {
				assert.InDelta(t, tt.value, got.Value, 1e-9)
			}
		})
	}
}

func TestExperienceMatch(t *testing.T) {
	tests := []struct {
		name      string
		required  engine.ExperienceLevel
		candidate engine.ExperienceLevel
		present   bool
		value     float64
	}{
		{"exact match", engine.LevelExpert, engine.LevelExpert, true, 1.0},
		{"one level off", engine.LevelExpert, engine.LevelIntermediate, true, 0.5},
		{"two levels off", engine.LevelExpert, engine.LevelEntry, true, 0.0},
		{"overqualified one level", engine.LevelEntry, engine.LevelIntermediate, true, 0.5},
		{"required unknown", engine.LevelUnknown, engine.LevelExpert, false, 0},
		{"candidate unknown", engine.LevelExpert, engine.LevelUnknown, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := experienceMatch(
				engine.EntitySignals{Experience: tt.required},
				engine.EntitySignals{Experience: tt.candidate},
			)
			assert.Equal(t, tt.present, got.Present)
			if tt.present {
				assert.InDelta(t, tt.value, got.Value, 1e-9)
			}
		})
	}
}

func TestAvailability(t *testing.T) {
	provider := availability(5)

	got := provider(engine.EntitySignals{}, engine.EntitySignals{ActiveContracts: 0})
	assert.Equal(t, 1.0, got.Value)

	got = provider(engine.EntitySignals{}, engine.EntitySignals{ActiveContracts: 2})
	assert.InDelta(t, 0.6, got.Value, 1e-9)

	got = provider(engine.EntitySignals{}, engine.EntitySignals{ActiveContracts: 7})
	assert.Equal(t, 0.0, got.Value)
}

func TestResponseRate(t *testing.T) {
	got := responseRate(engine.EntitySignals{}, engine.EntitySignals{ProposalsSent: 10, ProposalsAccepted: 7})
	assert.True(t, got.Present)
	assert.InDelta(t, 0.7, got.Value, 1e-9)

	// New users get a neutral 0.5, not an absent factor.
	got = responseRate(engine.EntitySignals{}, engine.EntitySignals{})
	assert.True(t, got.Present)
	assert.Equal(t, 0.5, got.Value)
}

func TestDefaultWeightsAreValid(t *testing.T) {
	cfg := &Config{BudgetTolerance: 0.25, ContractCeiling: 5}
	providers := Factors(cfg)

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	assert.NoError(t, DefaultWeights().Validate(names))
}
