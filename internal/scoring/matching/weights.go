// internal/scoring/matching/weights.go
package matching

import "marketplace-scoring/internal/scoring/engine"

// Domain is the registry name of this scoring domain.
const Domain = "matching"

// SecondaryFactor breaks ranking ties before falling back to candidate ID.
const SecondaryFactor = "avg_rating"

// DefaultWeights is the production weight table for project-freelancer
// matching. It must name exactly the factors built by Factors and sum to 1.0.
func DefaultWeights() engine.Weights {
	return engine.Weights{
		"skill_match":      0.30,
		"success_rate":     0.20,
		"avg_rating":       0.15,
		"budget_match":     0.15,
		"experience_match": 0.10,
		"availability":     0.05,
		"response_rate":    0.05,
	}
}
