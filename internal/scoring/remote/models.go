// internal/scoring/remote/models.go
package remote

// ScoreRequest is the payload sent to the external scoring service.
type ScoreRequest struct {
	ProjectID      string           `json:"project_id"`
	Description    string           `json:"description"`
	RequiredSkills []string         `json:"required_skills"`
	Candidates     []CandidateInput `json:"candidates"`
}

// CandidateInput is the per-candidate slice of the request payload.
type CandidateInput struct {
	ID     string   `json:"id"`
	Bio    string   `json:"bio,omitempty"`
	Skills []string `json:"skills"`
}

// ScoreResponse is the external service's reply.
type ScoreResponse struct {
	Scores []CandidateScore `json:"scores"`
}

// CandidateScore is one scored candidate from the external service. Factors
// is the service's own breakdown and is carried through for diagnostics; it
// is not validated against the local weight tables.
type CandidateScore struct {
	ID      string             `json:"id"`
	Score   float64            `json:"score"`
	Factors map[string]float64 `json:"factors,omitempty"`
}
