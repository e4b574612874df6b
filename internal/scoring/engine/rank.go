// internal/scoring/engine/rank.go
package engine

import "sort"

// RankedCandidate pairs an entity ID with its computed score result.
type RankedCandidate struct {
	ID     string      `json:"id"`
	Result ScoreResult `json:"result"`
}

// RankedList is an ordered, truncated set of scored candidates.
type RankedList []RankedCandidate

// Rank filters out candidates scoring strictly below minScore, orders the
// remainder by score descending, then by the secondary factor's value
// descending, then by ID ascending for a stable total order, and truncates
// to limit. A limit <= 0 means no truncation.
func Rank(candidates []RankedCandidate, minScore float64, limit int, secondaryFactor string) RankedList {
	kept := make(RankedList, 0, len(candidates))
	for _, c := range candidates {
		if c.Result.Score < minScore {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Result.Score != kept[j].Result.Score {
			return kept[i].Result.Score > kept[j].Result.Score
		}
		si := kept[i].Result.Factors[secondaryFactor]
		sj := kept[j].Result.Factors[secondaryFactor]
		if si != sj {
			return si > sj
		}
		return kept[i].ID < kept[j].ID
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
