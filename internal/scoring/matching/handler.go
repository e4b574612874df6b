// internal/scoring/matching/handler.go
// Package matching ranks freelancer candidates against a project using the
// weighted factor engine, preferring an external scoring service and falling
// back to local computation on any remote failure.
package matching

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"marketplace-scoring/internal/common/errors"
	"marketplace-scoring/internal/common/logger"
	"marketplace-scoring/internal/common/metrics"
	"marketplace-scoring/internal/common/observability"
	"marketplace-scoring/internal/models"
	"marketplace-scoring/internal/scoring/engine"
	"marketplace-scoring/internal/scoring/remote"
)

// RemoteScorer is the external scoring service dependency.
type RemoteScorer interface {
	Score(ctx context.Context, req *remote.ScoreRequest) (*remote.ScoreResponse, error)
}

// FreelancerLister resolves candidate IDs to profiles.
type FreelancerLister interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Freelancer, error)
}

// ProjectGetter resolves a project ID to its record.
type ProjectGetter interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
}

// SkillSearcher discovers candidate IDs by required skills, used when a
// request names neither candidates nor candidate IDs.
type SkillSearcher interface {
	FindBySkills(ctx context.Context, skills []string, size int) ([]string, error)
}

// Tracker records exposure events without ever blocking the caller.
type Tracker interface {
	Track(event models.ExposureEvent)
}

// Deps are the matching domain's collaborators. Remote, Projects, Search,
// Tracker, and Obs are optional; Freelancers is required only for requests
// that resolve candidates by ID or by search.
type Deps struct {
	Remote      RemoteScorer
	Freelancers FreelancerLister
	Projects    ProjectGetter
	Search      SkillSearcher
	Tracker     Tracker
	Obs         *observability.Observability
}

// Handler executes matching requests.
type Handler struct {
	config *Config
	engine *engine.Engine
	deps   Deps
	logger logger.Logger
}

// NewHandler wires the matching domain. The weight table is validated against
// the factor set here; a mismatch is a startup-fatal configuration error.
func NewHandler(cfg *Config, deps Deps, log logger.Logger) (*Handler, error) {
	eng, err := engine.NewEngine(Domain, Factors(cfg), DefaultWeights(), SecondaryFactor)
	if err != nil {
		return nil, errors.NewWeightTableInvalidError(Domain, err)
	}
	return &Handler{
		config: cfg,
		engine: eng,
		deps:   deps,
		logger: log.WithFields(map[string]interface{}{"domain": Domain}),
	}, nil
}

// Engine exposes the underlying engine for introspection endpoints.
func (h *Handler) Engine() *engine.Engine { return h.engine }

// Execute scores and ranks the candidates for one project. The remote path is
// attempted once when a remote scorer is configured; any failure falls back
// to the local engine within the same call.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	if input.Project.ID == "" && input.ProjectID != "" {
		if h.deps.Projects == nil {
			return nil, errors.NewInvalidInputError("projectId given but no project repository configured")
		}
		project, err := h.deps.Projects.GetByID(ctx, input.ProjectID)
		if err != nil {
			return nil, err
		}
		input.Project = *project
	}
	if input.Project.ID == "" {
		return nil, errors.NewInvalidInputError("project.id is required")
	}

	candidates, err := h.resolveCandidates(ctx, input)
	if err != nil {
		return nil, err
	}

	minScore := h.config.MinScore
	if input.MinScore != nil {
		minScore = *input.MinScore
	}
	limit := h.config.MaxResults
	if input.Limit != nil {
		limit = *input.Limit
	}

	subject := engine.ExtractProject(input.Project)

	scored, provenance := h.score(ctx, subject, candidates)
	results := h.engine.Rank(scored, minScore, limit)

	metrics.ScoringRequests.WithLabelValues(Domain, provenance).Inc()
	metrics.ScoringDuration.WithLabelValues(Domain).Observe(time.Since(start).Seconds())
	metrics.CandidatesRanked.WithLabelValues(Domain).Add(float64(len(results)))
	if h.deps.Obs != nil {
		h.deps.Obs.RecordScore(ctx, Domain, provenance)
		h.deps.Obs.RecordScoreDuration(ctx, time.Since(start), Domain)
	}

	h.trackExposures(input, results)

	h.logger.Info("candidates ranked", map[string]interface{}{
		"projectId":  input.Project.ID,
		"candidates": len(candidates),
		"surfaced":   len(results),
		"provenance": provenance,
		"durationMs": time.Since(start).Milliseconds(),
	})

	return &Output{Results: results, Provenance: provenance}, nil
}

// score runs the remote path when configured and the local engine otherwise
// or on any remote failure. It returns unranked candidates plus the batch
// provenance tag.
func (h *Handler) score(ctx context.Context, subject engine.EntitySignals, candidates []models.Freelancer) ([]engine.RankedCandidate, string) {
	if h.deps.Remote != nil {
		scored, err := h.scoreRemote(ctx, subject, candidates)
		if err == nil {
			return scored, engine.ProvenanceRemote
		}

		reason := "transport"
		if stdErr, ok := err.(*errors.StandardError); ok {
			reason = string(stdErr.Code)
		}
		metrics.RemoteFailures.WithLabelValues(reason).Inc()
		h.logger.Warn("remote scoring failed, falling back to local", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return h.scoreLocal(subject, candidates), engine.ProvenanceLocal
}

func (h *Handler) scoreRemote(ctx context.Context, subject engine.EntitySignals, candidates []models.Freelancer) ([]engine.RankedCandidate, error) {
	req := &remote.ScoreRequest{
		ProjectID:      subject.ID,
		Description:    subject.FreeText,
		RequiredSkills: setToList(subject.Skills),
		Candidates:     make([]remote.CandidateInput, 0, len(candidates)),
	}
	byID := make(map[string]models.Freelancer, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
		req.Candidates = append(req.Candidates, remote.CandidateInput{
			ID:     c.ID,
			Bio:    c.Bio,
			Skills: setToList(engine.ParseSkills(c.Skills)),
		})
	}

	resp, err := h.deps.Remote.Score(ctx, req)
	if err != nil {
		return nil, err
	}

	scored := make([]engine.RankedCandidate, 0, len(resp.Scores))
	for _, s := range resp.Scores {
		if _, ok := byID[s.ID]; !ok {
			return nil, errors.NewRemoteResponseInvalidError(
				fmt.Sprintf("response names unknown candidate %q", s.ID))
		}
		delete(byID, s.ID)
		scored = append(scored, engine.RankedCandidate{
			ID:     s.ID,
			Result: remoteResult(engine.Clamp01(s.Score), s.Factors),
		})
	}
	// The contract is one score per submitted candidate. A partial response
	// would silently exclude the unscored candidates from the ranking, so it
	// is rejected the same way an unknown ID is.
	if len(byID) != 0 {
		missing := make([]string, 0, len(byID))
		for id := range byID {
			missing = append(missing, id)
		}
		sort.Strings(missing)
		return nil, errors.NewRemoteResponseInvalidError(
			fmt.Sprintf("response missing candidates %v", missing))
	}
	return scored, nil
}

// remoteResult keeps every ScoreResult self-verifying: when the remote factor
// annotations reproduce the score under the production weights they are kept,
// otherwise the result is reported as a single fully-weighted factor.
func remoteResult(score float64, factors map[string]float64) engine.ScoreResult {
	weights := DefaultWeights()
	var dot float64
	for name, value := range factors {
		dot += value * weights[name]
	}
	if len(factors) == 0 || math.Abs(dot-score) > engine.WeightTolerance {
		factors = map[string]float64{"remote_score": score}
		weights = engine.Weights{"remote_score": 1.0}
	}
	return engine.ScoreResult{
		Score:      score,
		Factors:    factors,
		Weights:    weights,
		Provenance: engine.ProvenanceRemote,
	}
}

func (h *Handler) scoreLocal(subject engine.EntitySignals, candidates []models.Freelancer) []engine.RankedCandidate {
	scored := make([]engine.RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		result := h.engine.ScorePair(subject, engine.ExtractFreelancer(c))
		scored = append(scored, engine.RankedCandidate{ID: c.ID, Result: result})
	}
	return scored
}

func (h *Handler) resolveCandidates(ctx context.Context, input *Input) ([]models.Freelancer, error) {
	if len(input.Candidates) > 0 {
		return input.Candidates, nil
	}

	ids := input.CandidateIDs
	if len(ids) == 0 && h.deps.Search != nil {
		skills := setToList(engine.ParseSkills(input.Project.SkillsRequired))
		if len(skills) > 0 {
			discovered, err := h.deps.Search.FindBySkills(ctx, skills, h.config.MaxResults*5)
			if err != nil {
				h.logger.Warn("candidate search failed", map[string]interface{}{
					"projectId": input.Project.ID,
					"error":     err.Error(),
				})
			} else {
				ids = discovered
			}
		}
	}
	if len(ids) == 0 {
		return nil, errors.NewInvalidInputError("either candidates or candidateIds must be provided")
	}
	if h.deps.Freelancers == nil {
		return nil, errors.NewInvalidInputError("candidateIds given but no repository configured")
	}
	return h.deps.Freelancers.ListByIDs(ctx, ids)
}

// trackExposures emits a best-effort exposure event per surfaced result.
// Tracking never blocks or fails a scoring call.
func (h *Handler) trackExposures(input *Input, results engine.RankedList) {
	if h.deps.Tracker == nil {
		return
	}
	now := time.Now().UTC()
	for _, r := range results {
		h.deps.Tracker.Track(models.ExposureEvent{
			ID:         uuid.NewString(),
			UserID:     input.UserID,
			ItemType:   "freelancer",
			ItemID:     r.ID,
			Score:      r.Result.Score,
			OccurredAt: now,
		})
	}
}

func setToList(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}
