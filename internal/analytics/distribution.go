// Package analytics contains the pure derived-metric functions stats are
// built from. Nothing in here performs I/O; inputs come from the cache
// and results go straight into stat values. Zero denominators and empty
// inputs yield defined sentinels (0 or ok=false), never NaN or Inf.
package analytics

import (
	"sort"

	"tokenscope/models"
)

// Balances extracts scaled balances from a holder list.
func Balances(holders []models.HolderRecord, decimals int32) []float64 {
	out := make([]float64, 0, len(holders))
	for _, h := range holders {
		f, _ := h.Balance(decimals).Float64()
		out = append(out, f)
	}
	return out
}

// TopNConcentration returns the share of total supply held by the top n
// holders, in percent. Zero supply or an empty holder list yields 0.
func TopNConcentration(balances []float64, totalSupply float64, n int) float64 {
	if totalSupply <= 0 || len(balances) == 0 || n <= 0 {
		return 0
	}
	sorted := make([]float64, len(balances))
	copy(sorted, balances)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if n > len(sorted) {
		n = len(sorted)
	}
	var sum float64
	for _, b := range sorted[:n] {
		sum += b
	}
	return sum / totalSupply * 100
}

// Gini computes the Gini coefficient over holder balances using
// G = sum((2i - n - 1) * v_i) / (n * sum(v_i)) for 1-indexed
// ascending-sorted values. Uniform balances give 0; a single holder
// owning everything approaches 1 as the holder count grows.
func Gini(balances []float64) float64 {
	n := len(balances)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, balances)
	sort.Float64s(sorted)

	var total, weighted float64
	for i, v := range sorted {
		total += v
		weighted += float64(2*(i+1)-n-1) * v
	}
	if total == 0 {
		return 0
	}
	return weighted / (float64(n) * total)
}

// TierCount is the number of holders whose share of supply meets a
// percentage threshold.
type TierCount struct {
	ThresholdPct float64 `json:"thresholdPct"`
	Count        int     `json:"count"`
}

// DefaultTiers are the supply-share thresholds used by the tier stats.
var DefaultTiers = []float64{0.01, 0.1, 0.5, 1, 5}

// TierCounts buckets holders by their supply share at fixed thresholds.
func TierCounts(balances []float64, totalSupply float64, thresholds []float64) []TierCount {
	out := make([]TierCount, len(thresholds))
	for i, t := range thresholds {
		out[i] = TierCount{ThresholdPct: t}
	}
	if totalSupply <= 0 {
		return out
	}
	for _, b := range balances {
		share := b / totalSupply * 100
		for i, t := range thresholds {
			if share >= t {
				out[i].Count++
			}
		}
	}
	return out
}

// MedianTopK returns the median balance of the top k holders. The holder
// list is a bounded sample, so k caps the population considered.
func MedianTopK(balances []float64, k int) float64 {
	if len(balances) == 0 || k <= 0 {
		return 0
	}
	sorted := make([]float64, len(balances))
	copy(sorted, balances)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if k > len(sorted) {
		k = len(sorted)
	}
	return Median(sorted[:k])
}

// Median returns the middle value of xs, averaging the two middle values
// for even lengths.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
