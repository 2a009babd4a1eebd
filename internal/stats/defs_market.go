package stats

import (
	"context"

	"tokenscope/internal/analytics"
	"tokenscope/internal/cache"
	"tokenscope/internal/utils"
)

func marketStats() []Definition {
	return []Definition{
		def("mkt.price", "Price",
			"USD price on the primary pair.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{"usd": pair.Price(), "pair": pair.PairAddress}, nil
			}),

		def("mkt.price-change", "Price change",
			"Price change over 1h, 6h and 24h windows.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{
					"h1":  pair.PriceChange.H1,
					"h6":  pair.PriceChange.H6,
					"h24": pair.PriceChange.H24,
				}, nil
			}),

		def("mkt.volume", "DEX volume",
			"Trading volume over 1h, 6h and 24h windows.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{
					"h1":  pair.Volume.H1,
					"h6":  pair.Volume.H6,
					"h24": pair.Volume.H24,
				}, nil
			}),

		def("mkt.txns-24h", "DEX transactions 24h",
			"Buy and sell counts on the primary pair over 24 hours.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{
					"buys":  pair.Txns.H24.Buys,
					"sells": pair.Txns.H24.Sells,
					"total": pair.Txns.H24.Buys + pair.Txns.H24.Sells,
				}, nil
			}),

		def("mkt.buy-sell-ratio", "Buy/sell ratio 24h",
			"Buys divided by sells on the primary pair; 0 when no sells.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{"ratio": utils.Round2(utils.SafeDiv(
					float64(pair.Txns.H24.Buys), float64(pair.Txns.H24.Sells)))}, nil
			}),

		def("mkt.trades-per-hour", "Trades per hour",
			"Average hourly DEX transaction rate over the last day.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				total := pair.Txns.H24.Buys + pair.Txns.H24.Sells
				return V{"perHour": utils.Round2(float64(total) / 24)}, nil
			}),

		def("mkt.avg-trade-size", "Average trade size",
			"24h volume divided by 24h transaction count.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				total := pair.Txns.H24.Buys + pair.Txns.H24.Sells
				return V{"usd": utils.Round2(utils.SafeDiv(pair.Volume.H24, float64(total)))}, nil
			}),

		def("mkt.market-cap", "Market cap from price",
			"Scaled supply times the primary pair price.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{"usd": utils.Round2(supplyFloat(info) * pair.Price())}, nil
			}),

		def("mkt.price-dispersion", "Price dispersion across pairs",
			"Relative spread of USD prices across every listed pair.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pairs, err := w.EnsureDex(ctx)
				if err != nil {
					return nil, err
				}
				var prices []float64
				for _, p := range pairs {
					if f := p.Price(); f > 0 {
						prices = append(prices, f)
					}
				}
				mean := analytics.Mean(prices)
				return V{
					"relStdDevPct": utils.Round2(utils.SafeDiv(analytics.StdDev(prices), mean) * 100),
					"pairs":        len(prices),
				}, nil
			}),

		def("mkt.volume-change-correlation", "Volume/price-change correlation",
			"Pearson correlation between 24h volume and 24h price change across pairs.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pairs, err := w.EnsureDex(ctx)
				if err != nil {
					return nil, err
				}
				var vols, changes []float64
				for _, p := range pairs {
					vols = append(vols, p.Volume.H24)
					changes = append(changes, p.PriceChange.H24)
				}
				r, ok := analytics.Pearson(vols, changes)
				if !ok {
					return V{"correlation": nil, "reason": "not computable"}, nil
				}
				return V{"correlation": r, "pairs": len(pairs)}, nil
			}),

		def("mkt.volatility-proxy", "Volatility proxy",
			"Sample standard deviation of log returns over the implied 24h/6h/1h price path.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				now := pair.Price()
				if now <= 0 {
					return nil, cache.ErrMissingData
				}
				// Reconstruct past prices from the reported percent changes.
				// A change of -100% or beyond has no finite pre-change price
				// and is skipped.
				prices := make([]float64, 0, 4)
				for _, ch := range []float64{pair.PriceChange.H24, pair.PriceChange.H6, pair.PriceChange.H1} {
					if ch <= -100 {
						continue
					}
					prices = append(prices, now/(1+ch/100))
				}
				prices = append(prices, now)
				return V{"volatility": analytics.Volatility(prices)}, nil
			}),

		def("mkt.momentum", "Momentum",
			"Whether the 1h, 6h and 24h price changes agree in direction.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				up, down := 0, 0
				for _, ch := range []float64{pair.PriceChange.H1, pair.PriceChange.H6, pair.PriceChange.H24} {
					if ch > 0 {
						up++
					} else if ch < 0 {
						down++
					}
				}
				trend := "mixed"
				if up == 3 {
					trend = "up"
				} else if down == 3 {
					trend = "down"
				}
				return V{"trend": trend, "windowsUp": up, "windowsDown": down}, nil
			}),

		def("mkt.onchain-vs-dex", "On-chain vs DEX activity",
			"24h transfer count on chain compared to DEX transaction count.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				dexTotal := pair.Txns.H24.Buys + pair.Txns.H24.Sells
				return V{
					"chainTransfers": len(transfers),
					"dexTxns":        dexTotal,
					"ratio":          utils.Round2(utils.SafeDiv(float64(len(transfers)), float64(dexTotal))),
				}, nil
			}),

		def("mkt.explorer-vs-dex-price", "Explorer vs DEX price",
			"Deviation between the explorer's exchange rate and the primary pair price.",
			CategoryMarket,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				pair, err := primaryPair(ctx, w)
				if err != nil {
					return nil, err
				}
				return V{
					"explorerUsd":  info.ExchangeRate,
					"dexUsd":       pair.Price(),
					"deviationPct": utils.Round2(utils.PercentChange(pair.Price(), info.ExchangeRate)),
				}, nil
			}),
	}
}
