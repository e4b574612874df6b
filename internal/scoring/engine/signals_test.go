// internal/scoring/engine/signals_test.go
package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name     string
		raw      json.RawMessage
		expected []string
	}{
		{
			name:     "json list",
			raw:      json.RawMessage(`["Go", "PostgreSQL", "Docker"]`),
			expected: []string{"go", "postgresql", "docker"},
		},
		{
			name:     "json string comma separated",
			raw:      json.RawMessage(`"Go, PostgreSQL,Docker"`),
			expected: []string{"go", "postgresql", "docker"},
		},
		{
			name:     "plain delimited bytes",
			raw:      json.RawMessage(`go,redis`),
			expected: []string{"go", "redis"},
		},
		{
			name:     "duplicates and case collapse",
			raw:      json.RawMessage(`["Go", "go", " GO "]`),
			expected: []string{"go"},
		},
		{
			name:     "empty entries dropped",
			raw:      json.RawMessage(`["go", "", "  "]`),
			expected: []string{"go"},
		},
		{
			name:     "nil input",
			raw:      nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSkills(tt.raw)
			assert.Len(t, got, len(tt.expected))
			for _, skill := range tt.expected {
				assert.Contains(t, got, skill)
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a        []string
		b        []string
		expected float64
	}{
		{
			name:     "one of five overlap",
			a:        []string{"go", "redis", "kafka"},
			b:        []string{"go", "python", "django"},
			expected: 1.0 / 5.0,
		},
		{
			name:     "identical sets",
			a:        []string{"go", "redis"},
			b:        []string{"redis", "go"},
			expected: 1.0,
		},
		{
			name:     "disjoint sets",
			a:        []string{"go"},
			b:        []string{"rust"},
			expected: 0.0,
		},
		{
			name:     "both empty",
			a:        nil,
			b:        nil,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(SkillSet(tt.a), SkillSet(tt.b))
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestParseExperienceLevel(t *testing.T) {
	tests := []struct {
		raw      string
		expected ExperienceLevel
	}{
		{"entry", LevelEntry},
		{"Junior", LevelEntry},
		{"beginner", LevelEntry},
		{"intermediate", LevelIntermediate},
		{"Mid-Level", LevelIntermediate},
		{"mid", LevelIntermediate},
		{"expert", LevelExpert},
		{"SENIOR", LevelExpert},
		{"advanced", LevelExpert},
		{"", LevelUnknown},
		{"wizard", LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseExperienceLevel(tt.raw))
		})
	}
}

func TestKeywordOverlap(t *testing.T) {
	skills := SkillSet([]string{"go", "postgresql", "terraform"})

	assert.InDelta(t, 2.0/3.0, KeywordOverlap("We need go and postgresql experience", skills), 1e-9)
	assert.Equal(t, 0.0, KeywordOverlap("", skills))
	assert.Equal(t, 0.0, KeywordOverlap("anything", SkillSet(nil)))
}
