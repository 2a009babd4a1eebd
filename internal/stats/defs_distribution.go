package stats

import (
	"context"
	"fmt"

	"tokenscope/internal/analytics"
	"tokenscope/internal/cache"
	"tokenscope/internal/utils"
)

// concentrationStat builds one top-N concentration definition; the five
// variants differ only in N.
func concentrationStat(n int) Definition {
	return def(
		fmt.Sprintf("dist.top%d-share", n),
		fmt.Sprintf("Top %d concentration", n),
		fmt.Sprintf("Share of total supply held by the top %d holders.", n),
		CategoryDistribution,
		func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
			info, err := w.TokenInfo(ctx)
			if err != nil {
				return nil, err
			}
			holders, err := w.EnsureHolders(ctx)
			if err != nil {
				return nil, err
			}
			balances := analytics.Balances(holders, info.Decimals)
			pct := analytics.TopNConcentration(balances, supplyFloat(info), n)
			return V{"sharePct": utils.Round2(pct), "sampled": len(holders)}, nil
		})
}

func distributionStats() []Definition {
	defs := []Definition{
		concentrationStat(1),
		concentrationStat(5),
		concentrationStat(10),
		concentrationStat(20),
		concentrationStat(50),

		def("dist.gini", "Gini coefficient",
			"Inequality of the sampled holder balances: 0 equal, near 1 concentrated.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				gini := analytics.Gini(analytics.Balances(holders, info.Decimals))
				return V{"gini": gini, "sampled": len(holders)}, nil
			}),

		def("dist.tiers", "Holder tiers",
			"Holder counts at fixed supply-share thresholds.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				tiers := analytics.TierCounts(analytics.Balances(holders, info.Decimals), supplyFloat(info), analytics.DefaultTiers)
				return V{"tiers": tiers, "sampled": len(holders)}, nil
			}),

		def("dist.median-top50", "Median of top 50",
			"Median balance across the top 50 sampled holders.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				median := analytics.MedianTopK(analytics.Balances(holders, info.Decimals), 50)
				return V{"median": median, "symbol": info.Symbol}, nil
			}),

		def("dist.mean-balance", "Mean sampled balance",
			"Arithmetic mean balance over the sampled holder pages.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				mean := analytics.Mean(analytics.Balances(holders, info.Decimals))
				return V{"mean": mean, "sampled": len(holders)}, nil
			}),

		def("dist.top-holder", "Largest holder",
			"Address and supply share of the single largest holder.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				if len(holders) == 0 {
					return nil, cache.ErrMissingData
				}
				top := holders[0]
				bal, _ := top.Balance(info.Decimals).Float64()
				return V{
					"address":  top.Address,
					"balance":  decStr(top.Balance(info.Decimals)),
					"sharePct": shareOfSupply(bal, supplyFloat(info)),
				}, nil
			}),

		def("dist.top10-list", "Top 10 holders",
			"The ten largest sampled holders with balances and shares.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				n := 10
				if n > len(holders) {
					n = len(holders)
				}
				supply := supplyFloat(info)
				rows := make([]V, 0, n)
				for _, h := range holders[:n] {
					bal, _ := h.Balance(info.Decimals).Float64()
					rows = append(rows, V{
						"address":  h.Address,
						"balance":  decStr(h.Balance(info.Decimals)),
						"sharePct": shareOfSupply(bal, supply),
					})
				}
				return V{"holders": rows}, nil
			}),

		def("dist.whale-count", "Whale count",
			"Sampled holders owning at least 1% of total supply.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				supply := supplyFloat(info)
				count := 0
				for _, b := range analytics.Balances(holders, info.Decimals) {
					if supply > 0 && b/supply*100 >= 1 {
						count++
					}
				}
				return V{"whales": count, "thresholdPct": 1}, nil
			}),

		def("dist.hhi", "Herfindahl index",
			"Sum of squared supply shares over the sampled holders (0..10000 scale).",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				supply := supplyFloat(info)
				var hhi float64
				for _, b := range analytics.Balances(holders, info.Decimals) {
					share := utils.SafeDiv(b, supply) * 100
					hhi += share * share
				}
				return V{"hhi": utils.Round2(hhi), "sampled": len(holders)}, nil
			}),

		def("dist.sample-size", "Holder sample size",
			"How many holders the bounded pagination walk collected.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				counters, err := w.TokenCounters(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				return V{
					"sampled": len(holders),
					"total":   counters.TokenHoldersCount,
					"coveragePct": utils.Round2(utils.SafeDiv(
						float64(len(holders)), float64(counters.TokenHoldersCount)) * 100),
				}, nil
			}),

		def("dist.balance-spread", "Balance spread",
			"Ratio of the largest sampled balance to the sample median.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				balances := analytics.Balances(holders, info.Decimals)
				if len(balances) == 0 {
					return V{"ratio": 0}, nil
				}
				max := balances[0]
				for _, b := range balances {
					if b > max {
						max = b
					}
				}
				return V{"ratio": utils.Round2(utils.SafeDiv(max, analytics.Median(balances)))}, nil
			}),

		def("dist.holders-sampled-share", "Sampled supply share",
			"Share of supply covered by the sampled holder pages.",
			CategoryDistribution,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				var sum float64
				for _, b := range analytics.Balances(holders, info.Decimals) {
					sum += b
				}
				return V{"sharePct": shareOfSupply(sum, supplyFloat(info))}, nil
			}),
	}
	return defs
}
