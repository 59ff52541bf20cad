package curve

import (
	"sort"

	"github.com/alexanderramin/scurve/internal/domain"
)

// ChecklistWeights builds an id→weight map. Weights are clamped to [0,100]; a
// repeated id keeps its last weight.
func ChecklistWeights(items []domain.ChecklistItem) map[string]float64 {
	weights := make(map[string]float64, len(items))
	for _, item := range items {
		weights[item.ID] = ClampPercent(item.Weight)
	}
	return weights
}

// WeightedProgress combines per-item progress into one percentage.
//
// With a positive weight total, each weighted item contributes weight×progress and
// items without a known progress contribute 0. With a zero total it falls back to
// the arithmetic mean of the known progress values, or 0 when there are none.
func WeightedProgress(progress map[string]float64, weights map[string]float64) float64 {
	ids := sortedKeys(weights)
	var totalWeight, sum float64
	for _, id := range ids {
		w := ClampPercent(weights[id])
		totalWeight += w
		sum += w * ClampPercent(progress[id])
	}
	if totalWeight > 0 {
		return ClampPercent(sum / totalWeight)
	}

	if len(progress) == 0 {
		return 0
	}
	var total float64
	for _, id := range sortedKeys(progress) {
		total += ClampPercent(progress[id])
	}
	return ClampPercent(total / float64(len(progress)))
}

// ChecklistProgress is the weighted progress of a checklist from its own item state.
func ChecklistProgress(items []domain.ChecklistItem) float64 {
	progress := make(map[string]float64, len(items))
	for _, item := range items {
		progress[item.ID] = item.Progress
	}
	return WeightedProgress(progress, ChecklistWeights(items))
}

func hasWeights(weights map[string]float64) bool {
	for _, w := range weights {
		if w > 0 {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
