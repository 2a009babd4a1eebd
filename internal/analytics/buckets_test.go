package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tokenscope/models"
)

func xferAt(ts time.Time, rawValue string) models.TransferRecord {
	return models.TransferRecord{
		Timestamp:   ts,
		FromAddress: "0xa",
		ToAddress:   "0xb",
		RawValue:    decimal.RequireFromString(rawValue),
	}
}

func TestByUTCDayBucketsAndSorts(t *testing.T) {
	day1 := time.Date(2026, 8, 20, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 21, 0, 1, 0, 0, time.UTC)

	transfers := []models.TransferRecord{
		xferAt(day2, "2000000000000000000"),
		xferAt(day1, "1000000000000000000"),
		xferAt(day2, "3000000000000000000"),
	}
	buckets := ByUTCDay(transfers, 18)

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].Date != "2026-08-20" || buckets[1].Date != "2026-08-21" {
		t.Errorf("dates = %s, %s", buckets[0].Date, buckets[1].Date)
	}
	if buckets[0].Count != 1 || buckets[0].Volume.String() != "1" {
		t.Errorf("day1 = %+v", buckets[0])
	}
	if buckets[1].Count != 2 || buckets[1].Volume.String() != "5" {
		t.Errorf("day2 = %+v", buckets[1])
	}
}

func TestByUTCDayRespectsUTCBoundary(t *testing.T) {
	// 23:30 in UTC-3 is 02:30 the next day in UTC.
	loc := time.FixedZone("UTC-3", -3*60*60)
	local := time.Date(2026, 8, 20, 23, 30, 0, 0, loc)

	buckets := ByUTCDay([]models.TransferRecord{xferAt(local, "1")}, 0)
	if len(buckets) != 1 || buckets[0].Date != "2026-08-21" {
		t.Errorf("buckets = %+v, want one on 2026-08-21", buckets)
	}
}

func TestBusiestDay(t *testing.T) {
	buckets := []DayBucket{
		{Date: "2026-08-20", Count: 2},
		{Date: "2026-08-21", Count: 7},
		{Date: "2026-08-22", Count: 3},
	}
	best, ok := BusiestDay(buckets)
	if !ok || best.Date != "2026-08-21" {
		t.Errorf("busiest = %+v, ok = %v", best, ok)
	}

	if _, ok := BusiestDay(nil); ok {
		t.Error("empty set must not report a busiest day")
	}
}

func TestSeriesExtraction(t *testing.T) {
	buckets := []DayBucket{
		{Count: 2, Volume: decimal.NewFromInt(10)},
		{Count: 5, Volume: decimal.NewFromInt(20)},
	}
	counts := CountsPerDay(buckets)
	if len(counts) != 2 || counts[1] != 5 {
		t.Errorf("counts = %v", counts)
	}
	volumes := VolumesPerDay(buckets)
	if len(volumes) != 2 || volumes[1] != 20 {
		t.Errorf("volumes = %v", volumes)
	}
}
