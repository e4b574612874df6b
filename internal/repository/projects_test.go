// internal/repository/projects_test.go
package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-scoring/internal/common/logger"
)

var projectColumns = []string{
	"id", "client_id", "title", "description", "category", "skills_required",
	"budget_min", "budget_max", "estimated_hours", "experience_level",
	"created_at", "updated_at",
}

func TestProjectGetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(projectColumns).
		AddRow("p1", "c1", "Go backend", "Build a scoring service", "web-development",
			[]byte(`["go","postgresql"]`), 1000.0, 2000.0, 20.0, "expert",
			"2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z")
	mock.ExpectQuery("SELECT id, client_id").
		WithArgs("p1").
		WillReturnRows(rows)

	repo := NewProjectRepository(db, logger.NewTestLogger(t))
	p, err := repo.GetByID(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Go backend", p.Title)
	require.NotNil(t, p.BudgetMin)
	assert.Equal(t, 1000.0, *p.BudgetMin)
	require.NotNil(t, p.EstimatedHours)
	assert.Equal(t, 20.0, *p.EstimatedHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectGetByIDNulls(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(projectColumns).
		AddRow("p1", "c1", "Untitled", nil, nil, []byte(`[]`), nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery("SELECT id, client_id").
		WithArgs("p1").
		WillReturnRows(rows)

	repo := NewProjectRepository(db, logger.NewTestLogger(t))
	p, err := repo.GetByID(context.Background(), "p1")

	require.NoError(t, err)
	assert.Nil(t, p.BudgetMin)
	assert.Nil(t, p.BudgetMax)
	assert.Nil(t, p.EstimatedHours)
}

func TestProjectGetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, client_id").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	repo := NewProjectRepository(db, logger.NewTestLogger(t))
	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
}

// A broken cache write must degrade silently: the profile is still returned.
func TestFreelancerCacheWriteFailureIsSilent(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(freelancerCachePrefix + "f1").RedisNil()
	redisMock.Regexp().ExpectSet(freelancerCachePrefix+"f1", `.*`, time.Minute).
		SetErr(assert.AnError)

	mock.ExpectQuery("SELECT id, display_name").
		WithArgs("f1").
		WillReturnRows(freelancerRow())

	repo := NewFreelancerRepository(db, rdb, time.Minute, logger.NewTestLogger(t))
	f, err := repo.GetByID(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, "f1", f.ID)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
