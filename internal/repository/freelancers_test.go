// internal/repository/freelancers_test.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-scoring/internal/common/logger"
	"marketplace-scoring/internal/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func setupMiniredis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

var freelancerColumns = []string{
	"id", "display_name", "bio", "skills", "hourly_rate", "rating_avg",
	"completed_count", "total_count", "proposals_sent", "proposals_accepted",
	"active_contracts", "experience_level", "flag_count", "created_at",
}

func freelancerRow() *sqlmock.Rows {
	return sqlmock.NewRows(freelancerColumns).
		AddRow("f1", "Ada", "Backend engineer", []byte(`["go","postgresql"]`),
			80.0, 4.8, 38, 40, 20, 16, 1, "expert", 0, "2023-04-01T00:00:00Z")
}

func TestGetByIDFromDatabase(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, display_name").
		WithArgs("f1").
		WillReturnRows(freelancerRow())

	repo := NewFreelancerRepository(db, nil, time.Minute, logger.NewTestLogger(t))
	f, err := repo.GetByID(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, "f1", f.ID)
	assert.Equal(t, "Ada", f.DisplayName)
	require.NotNil(t, f.HourlyRate)
	assert.Equal(t, 80.0, *f.HourlyRate)
	require.NotNil(t, f.RatingAvg)
	assert.Equal(t, 4.8, *f.RatingAvg)
	assert.Equal(t, "expert", f.ExperienceLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNullColumnsStayUnknown(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(freelancerColumns).
		AddRow("f1", "Ada", nil, []byte(`[]`), nil, nil, 0, 0, 0, 0, 0, nil, 0, nil)
	mock.ExpectQuery("SELECT id, display_name").
		WithArgs("f1").
		WillReturnRows(rows)

	repo := NewFreelancerRepository(db, nil, time.Minute, logger.NewTestLogger(t))
	f, err := repo.GetByID(context.Background(), "f1")

	require.NoError(t, err)
	assert.Nil(t, f.HourlyRate)
	assert.Nil(t, f.RatingAvg)
	assert.Empty(t, f.ExperienceLevel)
}

func TestGetByIDPopulatesCache(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	rdb := setupMiniredis(t)

	mock.ExpectQuery("SELECT id, display_name").
		WithArgs("f1").
		WillReturnRows(freelancerRow())

	repo := NewFreelancerRepository(db, rdb, time.Minute, logger.NewTestLogger(t))

	// First read hits postgres and writes the cache.
	_, err := repo.GetByID(context.Background(), "f1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// Second read is served from the cache; no further query is expected.
	f, err := repo.GetByID(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", f.DisplayName)
}

func TestGetByIDIgnoresCorruptCache(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	rdb := setupMiniredis(t)

	require.NoError(t, rdb.Set(context.Background(), freelancerCachePrefix+"f1", "{not json", time.Minute).Err())

	mock.ExpectQuery("SELECT id, display_name").
		WithArgs("f1").
		WillReturnRows(freelancerRow())

	repo := NewFreelancerRepository(db, rdb, time.Minute, logger.NewTestLogger(t))
	f, err := repo.GetByID(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, "f1", f.ID)
}

func TestListByIDsDropsFailedLookups(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, display_name").
		WithArgs("f1").
		WillReturnRows(freelancerRow())
	mock.ExpectQuery("SELECT id, display_name").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewFreelancerRepository(db, nil, time.Minute, logger.NewTestLogger(t))
	out, err := repo.ListByIDs(context.Background(), []string{"f1", "missing"})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "f1", out[0].ID)
}

func TestCachedProfileRoundTrips(t *testing.T) {
	rdb := setupMiniredis(t)

	rate := 60.0
	original := models.Freelancer{
		ID:         "f9",
		Skills:     json.RawMessage(`["go"]`),
		HourlyRate: &rate,
	}
	payload, err := json.Marshal(original)
	require.NoError(t, err)
	require.NoError(t, rdb.Set(context.Background(), freelancerCachePrefix+"f9", payload, time.Minute).Err())

	repo := NewFreelancerRepository(nil, rdb, time.Minute, logger.NewTestLogger(t))
	f, err := repo.GetByID(context.Background(), "f9")

	require.NoError(t, err)
	require.NotNil(t, f.HourlyRate)
	assert.Equal(t, 60.0, *f.HourlyRate)
}
