// internal/scoring/engine/signals.go
// Package engine implements the weighted multi-factor scoring core: canonical
// entity signals, factor providers, weight tables, aggregation with absent
// factor redistribution, and threshold ranking.
package engine

import (
	"encoding/json"
	"strings"
)

// ExperienceLevel is the fixed ordinal seniority enum.
type ExperienceLevel int

const (
	LevelUnknown ExperienceLevel = iota
	LevelEntry
	LevelIntermediate
	LevelExpert
)

func (l ExperienceLevel) String() string {
	switch l {
	case LevelEntry:
		return "entry"
	case LevelIntermediate:
		return "intermediate"
	case LevelExpert:
		return "expert"
	default:
		return "unknown"
	}
}

// ParseExperienceLevel maps free-text seniority values onto the enum.
// Unrecognized values map to LevelUnknown; factors must handle that state
// explicitly instead of penalizing it.
func ParseExperienceLevel(raw string) ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "entry", "junior", "beginner":
		return LevelEntry
	case "intermediate", "mid", "mid-level", "midlevel":
		return LevelIntermediate
	case "expert", "senior", "advanced":
		return LevelExpert
	default:
		return LevelUnknown
	}
}

// EntitySignals is the canonical feature snapshot for one side of a
// comparison. It is built fresh per scoring call and treated as immutable
// afterwards. Nil pointer fields mean "unknown", never zero.
type EntitySignals struct {
	ID                string
	Skills            map[string]struct{}
	BudgetMin         *float64
	BudgetMax         *float64
	HourlyRate        *float64
	EstimatedHours    *float64
	RatingAvg         *float64
	CompletedCount    int
	TotalCount        int
	ProposalsSent     int
	ProposalsAccepted int
	ActiveContracts   int
	FlagCount         int
	Experience        ExperienceLevel
	Category          string
	FreeText          string
	CreatedAt         string
}

// HasSkill reports whether the normalized skill set contains the token.
func (s EntitySignals) HasSkill(skill string) bool {
	_, ok := s.Skills[normalizeToken(skill)]
	return ok
}

// ParseSkills turns an upstream skills payload into a normalized set. The
// payload may be a JSON list, a JSON string, or plain delimited text; tokens
// are lower-cased, trimmed, and deduplicated. Malformed payloads degrade to an
// empty set so that one broken record cannot abort a scoring batch.
func ParseSkills(raw json.RawMessage) map[string]struct{} {
	if len(raw) == 0 {
		return map[string]struct{}{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return SkillSet(list)
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return SkillSet(strings.Split(str, ","))
	}

	// Not valid JSON at all: treat the bytes as a plain delimited string.
	return SkillSet(strings.Split(string(raw), ","))
}

// SkillSet normalizes a token list into a set, dropping empty tokens.
func SkillSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		norm := normalizeToken(t)
		if norm == "" {
			continue
		}
		set[norm] = struct{}{}
	}
	return set
}

func normalizeToken(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// Jaccard computes |a ∩ b| / |a ∪ b|, returning 0 when the union is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// KeywordOverlap reports the fraction of skills that appear as substrings of
// the free text. Used by keyword-level scoring when only unstructured text is
// available for one side.
func KeywordOverlap(text string, skills map[string]struct{}) float64 {
	if len(skills) == 0 || strings.TrimSpace(text) == "" {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for skill := range skills {
		if strings.Contains(lower, skill) {
			hits++
		}
	}
	return float64(hits) / float64(len(skills))
}
