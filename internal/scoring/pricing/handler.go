// internal/scoring/pricing/handler.go
// Package pricing estimates an hourly-rate band for a project from its
// category, complexity, and skill profile. The domain is local-only: there is
// no remote path, every estimate carries local provenance.
package pricing

import (
	"context"
	"time"

	"marketplace-scoring/internal/common/errors"
	"marketplace-scoring/internal/common/logger"
	"marketplace-scoring/internal/common/metrics"
	"marketplace-scoring/internal/common/observability"
	"marketplace-scoring/internal/models"
	"marketplace-scoring/internal/scoring/engine"
)

// rateBandSpread is the half-width of the returned band around the point
// estimate, as a fraction of the estimate.
const rateBandSpread = 0.10

// Input is one rate-estimation request.
type Input struct {
	Project models.Project `json:"project"`
}

// Output is the estimate band plus the scoring breakdown that produced it.
type Output struct {
	EstimatedRate float64            `json:"estimatedRate"`
	RateMin       float64            `json:"rateMin"`
	RateMax       float64            `json:"rateMax"`
	Currency      string             `json:"currency"`
	Result        engine.ScoreResult `json:"result"`
}

// Handler executes pricing requests.
type Handler struct {
	config *Config
	engine *engine.Engine
	obs    *observability.Observability
	logger logger.Logger
}

// NewHandler wires the pricing domain; an invalid weight table is fatal.
func NewHandler(cfg *Config, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	eng, err := engine.NewEntityEngine(Domain, Factors(), DefaultWeights(), "")
	if err != nil {
		return nil, errors.NewWeightTableInvalidError(Domain, err)
	}
	return &Handler{
		config: cfg,
		engine: eng,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"domain": Domain}),
	}, nil
}

// Engine exposes the underlying engine for introspection endpoints.
func (h *Handler) Engine() *engine.Engine { return h.engine }

// Execute scores the project and maps the score onto the configured hourly
// band.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	if input.Project.ID == "" {
		return nil, errors.NewInvalidInputError("project.id is required")
	}

	result := h.engine.ScoreEntity(engine.ExtractProject(input.Project))

	rate := h.config.RateFloor + result.Score*(h.config.RateCeiling-h.config.RateFloor)
	output := &Output{
		EstimatedRate: rate,
		RateMin:       rate * (1 - rateBandSpread),
		RateMax:       rate * (1 + rateBandSpread),
		Currency:      "USD",
		Result:        result,
	}

	metrics.ScoringRequests.WithLabelValues(Domain, result.Provenance).Inc()
	metrics.ScoringDuration.WithLabelValues(Domain).Observe(time.Since(start).Seconds())
	if h.obs != nil {
		h.obs.RecordScore(ctx, Domain, result.Provenance)
		h.obs.RecordScoreDuration(ctx, time.Since(start), Domain)
	}

	h.logger.Info("rate estimated", map[string]interface{}{
		"projectId":     input.Project.ID,
		"score":         result.Score,
		"estimatedRate": rate,
	})

	return output, nil
}
