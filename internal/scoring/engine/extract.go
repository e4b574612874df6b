// internal/scoring/engine/extract.go
package engine

import (
	"marketplace-scoring/internal/models"
)

// ExtractProject builds canonical signals from a raw project record. The
// transformation is pure and fails open: malformed fields degrade to empty or
// unknown, never to an error.
func ExtractProject(p models.Project) EntitySignals {
	return EntitySignals{
		ID:             p.ID,
		Skills:         ParseSkills(p.SkillsRequired),
		BudgetMin:      p.BudgetMin,
		BudgetMax:      p.BudgetMax,
		EstimatedHours: p.EstimatedHours,
		Experience:     ParseExperienceLevel(p.ExperienceLevel),
		Category:       p.Category,
		FreeText:       p.Title + " " + p.Description,
		CreatedAt:      p.CreatedAt,
	}
}

// ExtractFreelancer builds canonical signals from a raw freelancer record.
func ExtractFreelancer(f models.Freelancer) EntitySignals {
	return EntitySignals{
		ID:                f.ID,
		Skills:            ParseSkills(f.Skills),
		HourlyRate:        f.HourlyRate,
		RatingAvg:         f.RatingAvg,
		CompletedCount:    f.CompletedCount,
		TotalCount:        f.TotalCount,
		ProposalsSent:     f.ProposalsSent,
		ProposalsAccepted: f.ProposalsAccepted,
		ActiveContracts:   f.ActiveContracts,
		FlagCount:         f.FlagCount,
		Experience:        ParseExperienceLevel(f.ExperienceLevel),
		FreeText:          f.Bio,
		CreatedAt:         f.CreatedAt,
	}
}
