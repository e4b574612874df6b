// internal/scoring/fraud/handler.go
// Package fraud scores freelancer profiles for fraud risk. Unlike matching,
// the aggregate is a risk score: higher means riskier. The domain is
// local-only, every result carries local provenance.
package fraud

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

// Risk levels assigned from the aggregate risk score.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Input is one risk-scoring request.
type Input struct {
	Freelancer models.Freelancer `json:"freelancer"`
}

// Output is the risk verdict plus the scoring breakdown that produced it.
type Output struct {
	RiskScore float64            `json:"riskScore"`
	RiskLevel string             `json:"riskLevel"`
	Result    engine.ScoreResult `json:"result"`
}

// Handler executes fraud-risk requests.
type Handler struct {
	config *Config
	engine *engine.Engine
	obs    *observability.Observability
	logger logger.Logger
}

// NewHandler wires the fraud domain; an invalid weight table is fatal.
func NewHandler(cfg *Config, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	eng, err := engine.NewEntityEngine(Domain, Factors(time.Now), DefaultWeights(), "")
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

// Execute scores the freelancer and assigns a risk level from the configured
// cut points.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	if input.Freelancer.ID == "" {
		return nil, errors.NewInvalidInputError("freelancer.id is required")
	}

	result := h.engine.ScoreEntity(engine.ExtractFreelancer(input.Freelancer))

	output := &Output{
		RiskScore: result.Score,
		RiskLevel: h.riskLevel(result.Score),
		Result:    result,
	}

	metrics.ScoringRequests.WithLabelValues(Domain, result.Provenance).Inc()
	metrics.ScoringDuration.WithLabelValues(Domain).Observe(time.Since(start).Seconds())
	if h.obs != nil {
		h.obs.RecordScore(ctx, Domain, result.Provenance)
		h.obs.RecordScoreDuration(ctx, time.Since(start), Domain)
	}

	h.logger.Info("risk scored", map[string]interface{}{
		"freelancerId": input.Freelancer.ID,
		"riskScore":    result.Score,
		"riskLevel":    output.RiskLevel,
	})

	return output, nil
}

func (h *Handler) riskLevel(score float64) string {
	switch {
	case score >= h.config.HighThreshold:
		return RiskHigh
	case score >= h.config.MediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}
