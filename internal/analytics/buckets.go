package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tokenscope/models"
)

// DayBucket aggregates transfers that share a UTC calendar date.
type DayBucket struct {
	Date   string          `json:"date"`
	Count  int             `json:"count"`
	Volume decimal.Decimal `json:"volume"`
}

// ByUTCDay buckets transfers by UTC date truncation, oldest first.
func ByUTCDay(transfers []models.TransferRecord, decimals int32) []DayBucket {
	byDay := make(map[string]*DayBucket)
	for _, t := range transfers {
		date := t.Timestamp.UTC().Format(time.DateOnly)
		b, ok := byDay[date]
		if !ok {
			b = &DayBucket{Date: date, Volume: decimal.Zero}
			byDay[date] = b
		}
		b.Count++
		b.Volume = b.Volume.Add(t.Value(decimals))
	}
	out := make([]DayBucket, 0, len(byDay))
	for _, b := range byDay {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// BusiestDay returns the bucket with the highest transfer count. ok is
// false for an empty set.
func BusiestDay(buckets []DayBucket) (DayBucket, bool) {
	if len(buckets) == 0 {
		return DayBucket{}, false
	}
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.Count > best.Count {
			best = b
		}
	}
	return best, true
}

// CountsPerDay extracts the per-day transfer counts as a float series for
// correlation and volatility style metrics.
func CountsPerDay(buckets []DayBucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = float64(b.Count)
	}
	return out
}

// VolumesPerDay extracts the per-day volumes as a float series.
func VolumesPerDay(buckets []DayBucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		f, _ := b.Volume.Float64()
		out[i] = f
	}
	return out
}
