package stats

import (
	"context"
	"fmt"

	"tokenscope/internal/analytics"
	"tokenscope/internal/cache"
	"tokenscope/internal/dexapi"
	"tokenscope/internal/utils"
)

// primaryPair resolves the deepest pair, treating a token with no DEX
// listing as missing data.
func primaryPair(ctx context.Context, w *cache.Workspace) (dexapi.Pair, error) {
	pairs, err := w.EnsureDex(ctx)
	if err != nil {
		return dexapi.Pair{}, err
	}
	pair, ok := dexapi.PrimaryPair(pairs)
	if !ok {
		return dexapi.Pair{}, cache.ErrMissingData
	}
	return pair, nil
}

// tradeImpactStat builds a price-impact definition for a hypothetical
// USD-sized sell into the primary pool.
func tradeImpactStat(usd float64) Definition {
	label := fmt.Sprintf("$%.0f", usd)
	return def(
		fmt.Sprintf("liq.impact-%.0fusd", usd),
		fmt.Sprintf("Price impact of a %s trade", label),
		fmt.Sprintf("Constant-product price impact of a hypothetical %s trade against the primary pool.", label),
		CategoryLiquidity,
		func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
			pair, err := primaryPair(ctx, w)
			if err != nil {
				return nil, err
			}
			// Convert the USD trade into quote units: half the pool's USD
			// liquidity backs the quote reserve.
			quoteUsd := pair.Liquidity.USD / 2
			tradeQuote := utils.SafeDiv(usd, quoteUsd) * pair.Liquidity.Quote
			impact := analytics.PriceImpact(tradeQuote, pair.Liquidity.Quote, pair.Liquidity.Base)
			return V{
				"impactPct":    utils.Round2(impact),
				"pair":         pair.PairAddress,
				"dex":          pair.DexID,
				"liquidityUsd": pair.Liquidity.USD,
			}, nil
		})
}

func liquidityStats() []Definition {
	return []Definition{
		def("liq.pairs-count", "DEX pair count",
			"How many trading pairs the aggregator lists for the token.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pairs, err := w.EnsureDex(ctx)
				if err != nil {
					return nil, err
				}
				return V{"pairs": len(pairs)}, nil
			}),

		def("liq.total-usd", "Total DEX liquidity",
			"USD liquidity summed across every listed pair.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pairs, err := w.EnsureDex(ctx)
				if err != nil {
					return nil, err
				}
				var total float64
				for _, p := range pairs {
					total += p.Liquidity.USD
				}
				return V{"usd": utils.Round2(total), "pairs": len(pairs)}, nil
			}),

		def("liq.primary-pair", "Primary pair",
			"The deepest pool: dex, pair address and reserves.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{
					"dex":          pair.DexID,
					"pair":         pair.PairAddress,
					"base":         pair.BaseToken.Symbol,
					"quote":        pair.QuoteToken.Symbol,
					"liquidityUsd": pair.Liquidity.USD,
					"priceUsd":     pair.Price(),
				}, nil
			}),

		tradeImpactStat(1_000),
		tradeImpactStat(10_000),
		tradeImpactStat(100_000),

		def("liq.depth-1pct", "Depth to move price 1%",
			"Trade size, in quote units and USD, that shifts the primary pool price by 1%.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				depthQuote := analytics.DepthForImpact(1, pair.Liquidity.Quote)
				quoteUsd := pair.Liquidity.USD / 2
				depthUsd := utils.SafeDiv(depthQuote, pair.Liquidity.Quote) * quoteUsd
				return V{
					"quoteUnits": depthQuote,
					"usd":        utils.Round2(depthUsd),
					"pair":       pair.PairAddress,
				}, nil
			}),

		def("liq.reserves", "Primary pool reserves",
			"Base and quote reserves of the deepest pool.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{
					"base":  pair.Liquidity.Base,
					"quote": pair.Liquidity.Quote,
					"usd":   pair.Liquidity.USD,
				}, nil
			}),

		def("liq.liquidity-mcap-ratio", "Liquidity / market cap",
			"Total DEX liquidity as a share of circulating market cap.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				pairs, err := w.EnsureDex(ctx)
				if err != nil {
					return nil, err
				}
				var total float64
				for _, p := range pairs {
					total += p.Liquidity.USD
				}
				return V{"ratioPct": utils.Round2(utils.SafeDiv(total, info.CirculatingMC) * 100)}, nil
			}),

		def("liq.volume-liquidity-ratio", "Volume / liquidity",
			"24h volume of the primary pair relative to its liquidity (turnover).",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{"turnover": utils.Round2(utils.SafeDiv(pair.Volume.H24, pair.Liquidity.USD))}, nil
			}),

		def("liq.per-holder", "Liquidity per holder",
			"USD liquidity divided by holder count.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				counters, err := w.TokenCounters(ctx)
				if err != nil {
					return nil, err
				}
				pairs, err := w.EnsureDex(ctx)
				if err != nil {
					return nil, err
				}
				var total float64
				for _, p := range pairs {
					total += p.Liquidity.USD
				}
				return V{"usdPerHolder": utils.Round2(utils.SafeDiv(total, float64(counters.TokenHoldersCount)))}, nil
			}),

		def("liq.dex-count", "Distinct DEXes",
			"How many distinct DEXes list the token.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pairs, err := w.EnsureDex(ctx)
				if err != nil {
					return nil, err
				}
				dexes := make(map[string]bool)
				for _, p := range pairs {
					dexes[p.DexID] = true
				}
				return V{"dexes": len(dexes)}, nil
			}),

		def("liq.concentration", "Liquidity concentration",
			"Share of total liquidity sitting in the primary pool.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pairs, err := w.EnsureDex(ctx)
				if err != nil {
					return nil, err
				}
				pair, ok := dexapi.PrimaryPair(pairs)
				if !ok {
					return nil, cache.ErrMissingData
				}
				var total float64
				for _, p := range pairs {
					total += p.Liquidity.USD
				}
				return V{
					"primarySharePct": utils.Round2(utils.SafeDiv(pair.Liquidity.USD, total) * 100),
					"pairs":           len(pairs),
				}, nil
			}),

		def("liq.effective-price-10k", "Effective price of a $10k trade",
			"Average rate actually paid selling $10k into the primary pool vs the spot rate.",
			CategoryLiquidity,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				quoteUsd := pair.Liquidity.USD / 2
				tradeQuote := utils.SafeDiv(10_000, quoteUsd) * pair.Liquidity.Quote
				eff := analytics.EffectivePrice(tradeQuote, pair.Liquidity.Quote, pair.Liquidity.Base)
				spot := utils.SafeDiv(pair.Liquidity.Base, pair.Liquidity.Quote)
				return V{
					"effectiveRate": eff,
					"spotRate":      spot,
					"slippagePct":   utils.Round2(utils.PercentChange(eff, spot)),
				}, nil
			}),
	}
}
