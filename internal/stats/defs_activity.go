package stats

import (
	"context"
	"time"

	"tokenscope/internal/analytics"
	"tokenscope/internal/cache"
	"tokenscope/internal/utils"
	"tokenscope/models"
)

// fetch7d pulls a week of transfers through the bounded window walker.
// Unlike the 24h set this is not a cached slot; only a few stats need it.
func fetch7d(ctx context.Context, w *cache.Workspace) ([]models.TransferRecord, error) {
	p := w.Params()
	return w.Explorer().FetchTransfersWithin(ctx, w.Token(), 7*24*time.Hour, p.XferPageSize, p.XferMaxPages)
}

func activityStats() []Definition {
	return []Definition{
		def("act.transfers-24h", "Transfers in 24h",
			"Number of transfer events within the last 24 hours.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				return V{"transfers": len(transfers)}, nil
			}),

		def("act.volume-24h", "Volume in 24h",
			"Total token amount moved within the last 24 hours.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				vol := analytics.TotalVolume(transfers, info.Decimals)
				return V{"volume": decStr(vol), "symbol": info.Symbol}, nil
			}),

		def("act.unique-participants-24h", "Unique participants 24h",
			"Estimated distinct addresses sending or receiving in 24h.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				return V{"estimated": analytics.UniqueParticipants(transfers)}, nil
			}),

		def("act.unique-senders-24h", "Unique senders 24h",
			"Estimated distinct sending addresses in 24h.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				return V{"estimated": analytics.UniqueSenders(transfers)}, nil
			}),

		def("act.unique-receivers-24h", "Unique receivers 24h",
			"Estimated distinct receiving addresses in 24h.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				return V{"estimated": analytics.UniqueReceivers(transfers)}, nil
			}),

		def("act.new-holders-24h", "Incoming addresses 24h",
			"Addresses that only received within the window (new-holder cohort).",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				received, _ := analytics.Churn(transfers)
				return V{"count": len(received)}, nil
			}),

		def("act.lost-holders-24h", "Departing addresses 24h",
			"Addresses that only sent within the window (departed cohort).",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				_, sent := analytics.Churn(transfers)
				return V{"count": len(sent)}, nil
			}),

		def("act.holder-churn-24h", "Holder churn 24h",
			"Received-only minus sent-only address counts over the window.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				received, sent := analytics.Churn(transfers)
				return V{
					"incoming": len(received),
					"outgoing": len(sent),
					"net":      len(received) - len(sent),
				}, nil
			}),

		def("act.daily-7d", "Daily activity 7d",
			"Per-UTC-day transfer counts and volumes over the last week.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := fetch7d(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{"days": analytics.ByUTCDay(transfers, info.Decimals)}, nil
			}),

		def("act.busiest-day-7d", "Busiest day 7d",
			"UTC day with the most transfers in the last week.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := fetch7d(ctx, w)
				if err != nil {
					return nil, err
				}
				day, ok := analytics.BusiestDay(analytics.ByUTCDay(transfers, info.Decimals))
				if !ok {
					return V{"day": nil}, nil
				}
				return V{"day": day.Date, "transfers": day.Count}, nil
			}),

		def("act.avg-daily-transfers-7d", "Average daily transfers 7d",
			"Mean per-day transfer count over the sampled week.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := fetch7d(ctx, w)
				if err != nil {
					return nil, err
				}
				buckets := analytics.ByUTCDay(transfers, info.Decimals)
				return V{"avgPerDay": utils.Round2(analytics.Mean(analytics.CountsPerDay(buckets)))}, nil
			}),

		def("act.volume-trend-7d", "Volume trend 7d",
			"Percent change of daily volume between the two halves of the week.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := fetch7d(ctx, w)
				if err != nil {
					return nil, err
				}
				vols := analytics.VolumesPerDay(analytics.ByUTCDay(transfers, info.Decimals))
				half := len(vols) / 2
				older := analytics.Mean(vols[:half])
				newer := analytics.Mean(vols[half:])
				return V{"changePct": utils.Round2(utils.PercentChange(newer, older))}, nil
			}),

		def("act.transfer-size-24h", "Transfer size 24h",
			"Mean, median and max transfer size over the last 24 hours.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				sizes := make([]float64, 0, len(transfers))
				var max float64
				for _, t := range transfers {
					f, _ := t.Value(info.Decimals).Float64()
					sizes = append(sizes, f)
					if f > max {
						max = f
					}
				}
				return V{
					"mean":   analytics.Mean(sizes),
					"median": analytics.Median(sizes),
					"max":    max,
					"count":  len(sizes),
				}, nil
			}),

		def("act.largest-transfer-24h", "Largest transfer 24h",
			"The biggest single transfer in the last 24 hours.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				if len(transfers) == 0 {
					return V{"transfer": nil}, nil
				}
				best := transfers[0]
				for _, t := range transfers[1:] {
					if t.RawValue.GreaterThan(best.RawValue) {
						best = t
					}
				}
				return V{
					"value":     decStr(best.Value(info.Decimals)),
					"from":      best.FromAddress,
					"to":        best.ToAddress,
					"txHash":    best.TxHash,
					"timestamp": best.Timestamp,
				}, nil
			}),

		def("act.burn-count-24h", "Burn events 24h",
			"Number of transfers into burn sinks within 24 hours.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				count := 0
				for _, t := range transfers {
					if t.IsBurn() {
						count++
					}
				}
				return V{"burns": count}, nil
			}),

		def("act.mint-count-24h", "Mint events 24h",
			"Number of transfers out of the zero address within 24 hours.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				count := 0
				for _, t := range transfers {
					if t.IsMint() {
						count++
					}
				}
				return V{"mints": count}, nil
			}),

		def("act.count-volume-correlation-7d", "Count/volume correlation 7d",
			"Pearson correlation between daily transfer counts and volumes.",
			CategoryActivity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := fetch7d(ctx, w)
				if err != nil {
					return nil, err
				}
				buckets := analytics.ByUTCDay(transfers, info.Decimals)
				r, ok := analytics.Pearson(analytics.CountsPerDay(buckets), analytics.VolumesPerDay(buckets))
				if !ok {
					return V{"correlation": nil, "reason": "not computable"}, nil
				}
				return V{"correlation": r, "days": len(buckets)}, nil
			}),
	}
}
