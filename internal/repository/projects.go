// internal/repository/projects.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"marketplace-scoring/internal/common/errors"
	"marketplace-scoring/internal/common/logger"
	"marketplace-scoring/internal/models"
)

// ProjectRepository reads project records from postgres. Projects are scored
// once per request and change rarely mid-request, so there is no cache layer.
type ProjectRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewProjectRepository(db *sql.DB, log logger.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"repository": "projects"}),
	}
}

const projectQuery = `
	SELECT id, client_id, title, description, category, skills_required,
	       budget_min, budget_max, estimated_hours, experience_level,
	       created_at, updated_at
	FROM projects
	WHERE id = $1`

// GetByID fetches one project record.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var (
		p          models.Project
		desc       sql.NullString
		category   sql.NullString
		skills     []byte
		budgetMin  sql.NullFloat64
		budgetMax  sql.NullFloat64
		hours      sql.NullFloat64
		experience sql.NullString
		createdAt  sql.NullString
		updatedAt  sql.NullString
	)

	err := r.db.QueryRowContext(ctx, projectQuery, id).Scan(
		&p.ID, &p.ClientID, &p.Title, &desc, &category, &skills,
		&budgetMin, &budgetMax, &hours, &experience, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("project", err)
	}

	p.Description = desc.String
	p.Category = category.String
	p.SkillsRequired = json.RawMessage(skills)
	if budgetMin.Valid {
		p.BudgetMin = &budgetMin.Float64
	}
	if budgetMax.Valid {
		p.BudgetMax = &budgetMax.Float64
	}
	if hours.Valid {
		p.EstimatedHours = &hours.Float64
	}
	p.ExperienceLevel = experience.String
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String

	return &p, nil
}
