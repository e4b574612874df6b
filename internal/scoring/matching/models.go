// internal/scoring/matching/models.go
package matching

import (
	"marketplace-scoring/internal/models"
	"marketplace-scoring/internal/scoring/engine"
)

// Input is one ranking request. Candidates may be supplied inline or by ID;
// IDs are resolved through the freelancer repository. MinScore and Limit
// override the configured defaults when set.
type Input struct {
	Project      models.Project      `json:"project"`
	ProjectID    string              `json:"projectId,omitempty"`
	Candidates   []models.Freelancer `json:"candidates,omitempty"`
	CandidateIDs []string            `json:"candidateIds,omitempty"`
	MinScore     *float64            `json:"minScore,omitempty"`
	Limit        *int                `json:"limit,omitempty"`
	UserID       string              `json:"userId,omitempty"`
}

// Output is the ranked, truncated result list. Provenance reports which path
// produced the scores for the whole batch.
type Output struct {
	Results    engine.RankedList `json:"results"`
	Provenance string            `json:"provenance"`
}
