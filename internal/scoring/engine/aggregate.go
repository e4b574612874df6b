// internal/scoring/engine/aggregate.go
package engine

// Provenance tags identifying which path produced a result.
const (
	ProvenanceRemote = "remote"
	ProvenanceLocal  = "local"
)

// ScoreResult is the output of one scoring call. Score equals the dot product
// of Factors and Weights (within floating rounding), so any caller can
// recompute and verify it from the returned breakdown.
type ScoreResult struct {
	Score      float64            `json:"score"`
	Factors    map[string]float64 `json:"factors"`
	Weights    Weights            `json:"weights"`
	Provenance string             `json:"provenance"`
}

// Aggregate combines factor scores under the weight table. The weight of any
// absent factor is redistributed proportionally across the present factors, so
// effective weights always sum to 1.0 over the present set. The returned
// Weights are the effective ones, keeping the result self-verifying.
//
// With no present factors at all the result is a zero score with an empty
// breakdown, which the threshold then drops.
func Aggregate(scores map[string]FactorScore, weights Weights) ScoreResult {
	presentSum := 0.0
	for name, fs := range scores {
		if fs.Present {
			presentSum += weights[name]
		}
	}

	result := ScoreResult{
		Factors:    make(map[string]float64, len(scores)),
		Weights:    make(Weights, len(scores)),
		Provenance: ProvenanceLocal,
	}

	if presentSum <= 0 {
		return result
	}

	total := 0.0
	for name, fs := range scores {
		if !fs.Present {
			continue
		}
		effective := weights[name] / presentSum
		result.Factors[name] = fs.Value
		result.Weights[name] = effective
		total += fs.Value * effective
	}
	result.Score = Clamp01(total)

	return result
}
