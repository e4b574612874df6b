// internal/models/project.go
package models

import "encoding/json"

// Project is the raw marketplace record for a posted project, as returned by
// the project repository. Fields may be missing or null; pointer fields carry
// nil for "unknown" rather than a zero value. SkillsRequired preserves the
// upstream shape (JSON list or delimited string) so that decoding happens in
// exactly one place, the signal extractor.
type Project struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"clientId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	SkillsRequired  json.RawMessage `json:"skillsRequired"`
	BudgetMin       *float64        `json:"budgetMin"`
	BudgetMax       *float64        `json:"budgetMax"`
	EstimatedHours  *float64        `json:"estimatedHours"`
	ExperienceLevel string          `json:"experienceLevel"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}
