// internal/repository/freelancers.go
// Package repository loads raw marketplace records for scoring. Reads go
// through a redis cache where one exists; cache trouble degrades to the
// database, and a missing candidate degrades to a smaller batch rather than
// failing the whole scoring call.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace-scoring/internal/common/errors"
	"marketplace-scoring/internal/common/logger"
	"marketplace-scoring/internal/models"
)

const freelancerCachePrefix = "freelancer:profile:"

// FreelancerRepository reads freelancer profiles from postgres with a redis
// read-through cache. The redis client may be nil; reads then always hit
// postgres.
type FreelancerRepository struct {
	db     *sql.DB
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewFreelancerRepository(db *sql.DB, rdb *redis.Client, ttl time.Duration, log logger.Logger) *FreelancerRepository {
	return &FreelancerRepository{
		db:     db,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"repository": "freelancers"}),
	}
}

const freelancerQuery = `
	SELECT id, display_name, bio, skills, hourly_rate, rating_avg,
	       completed_count, total_count, proposals_sent, proposals_accepted,
	       active_contracts, experience_level, flag_count, created_at
	FROM freelancers
	WHERE id = $1`

// GetByID fetches one profile, preferring the cache.
func (r *FreelancerRepository) GetByID(ctx context.Context, id string) (*models.Freelancer, error) {
	if cached := r.fromCache(ctx, id); cached != nil {
		return cached, nil
	}

	row := r.db.QueryRowContext(ctx, freelancerQuery, id)
	freelancer, err := scanFreelancer(row)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("freelancer", err)
	}

	r.toCache(ctx, freelancer)
	return freelancer, nil
}

// ListByIDs resolves a candidate batch. Individual lookup failures shrink the
// batch instead of aborting it; only an empty result is an error to the
// caller's taste.
func (r *FreelancerRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Freelancer, error) {
	out := make([]models.Freelancer, 0, len(ids))
	for _, id := range ids {
		f, err := r.GetByID(ctx, id)
		if err != nil {
			r.logger.Warn("candidate lookup failed, dropping from batch", map[string]interface{}{
				"freelancerId": id,
				"error":        err.Error(),
			})
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *FreelancerRepository) fromCache(ctx context.Context, id string) *models.Freelancer {
	if r.redis == nil {
		return nil
	}
	val, err := r.redis.Get(ctx, freelancerCachePrefix+id).Result()
	if err != nil {
		return nil
	}
	var f models.Freelancer
	if err := json.Unmarshal([]byte(val), &f); err != nil {
		return nil
	}
	return &f
}

func (r *FreelancerRepository) toCache(ctx context.Context, f *models.Freelancer) {
	if r.redis == nil {
		return
	}
	payload, err := json.Marshal(f)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, freelancerCachePrefix+f.ID, payload, r.ttl).Err(); err != nil {
		r.logger.Debug("profile cache write failed", map[string]interface{}{
			"freelancerId": f.ID,
			"error":        err.Error(),
		})
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFreelancer(row rowScanner) (*models.Freelancer, error) {
	var (
		f          models.Freelancer
		bio        sql.NullString
		skills     []byte
		hourlyRate sql.NullFloat64
		ratingAvg  sql.NullFloat64
		experience sql.NullString
		createdAt  sql.NullString
	)

	err := row.Scan(
		&f.ID, &f.DisplayName, &bio, &skills, &hourlyRate, &ratingAvg,
		&f.CompletedCount, &f.TotalCount, &f.ProposalsSent, &f.ProposalsAccepted,
		&f.ActiveContracts, &experience, &f.FlagCount, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	f.Bio = bio.String
	f.Skills = json.RawMessage(skills)
	if hourlyRate.Valid {
		f.HourlyRate = &hourlyRate.Float64
	}
	if ratingAvg.Valid {
		f.RatingAvg = &ratingAvg.Float64
	}
	f.ExperienceLevel = experience.String
	f.CreatedAt = createdAt.String

	return &f, nil
}
