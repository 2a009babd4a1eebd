package stats

import (
	"context"

	"tokenscope/internal/analytics"
	"tokenscope/internal/cache"
	"tokenscope/internal/utils"
	"tokenscope/models"
)

func supplyStats() []Definition {
	return []Definition{
		def("supply.total", "Total supply",
			"Total token supply reported by the explorer, scaled by decimals.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				return V{
					"raw":      decStr(info.TotalSupply),
					"scaled":   decStr(info.TotalSupply.Shift(-info.Decimals)),
					"decimals": info.Decimals,
					"symbol":   info.Symbol,
				}, nil
			}),

		def("supply.metadata", "Token metadata",
			"Name, symbol, decimals and token standard.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				return V{
					"name":     info.Name,
					"symbol":   info.Symbol,
					"decimals": info.Decimals,
					"type":     info.TokenType,
				}, nil
			}),

		def("supply.holders-count", "Holder count",
			"Number of addresses currently holding the token.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				counters, err := w.TokenCounters(ctx)
				if err != nil {
					return nil, err
				}
				count := info.HoldersCount
				if counters.TokenHoldersCount > 0 {
					count = counters.TokenHoldersCount
				}
				return V{"holders": count}, nil
			}),

		def("supply.transfers-count", "Lifetime transfer count",
			"Total number of transfer events recorded for the token.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				counters, err := w.TokenCounters(ctx)
				if err != nil {
					return nil, err
				}
				return V{"transfers": counters.TransfersCount}, nil
			}),

		def("supply.market-cap", "Circulating market cap",
			"Circulating market cap as reported by the explorer.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				return V{"usd": info.CirculatingMC}, nil
			}),

		def("supply.exchange-rate", "Exchange rate",
			"Explorer's USD exchange rate for one token.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				return V{"usd": info.ExchangeRate}, nil
			}),

		def("supply.burned-24h", "Burned in 24h",
			"Token amount sent to burn sinks within the last 24 hours.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				burned := analytics.BurnedInWindow(transfers, info.Decimals)
				return V{"burned": decStr(burned), "symbol": info.Symbol}, nil
			}),

		def("supply.minted-24h", "Minted in 24h",
			"Token amount minted from the zero address within the last 24 hours.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				minted := analytics.MintedInWindow(transfers, info.Decimals)
				return V{"minted": decStr(minted), "symbol": info.Symbol}, nil
			}),

		def("supply.net-issuance-24h", "Net issuance 24h",
			"Minted minus burned over the last 24 hours.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				minted := analytics.MintedInWindow(transfers, info.Decimals)
				burned := analytics.BurnedInWindow(transfers, info.Decimals)
				return V{
					"minted": decStr(minted),
					"burned": decStr(burned),
					"net":    decStr(minted.Sub(burned)),
				}, nil
			}),

		def("supply.burned-total", "Total burned supply",
			"Current balances of the zero and dead addresses as a share of supply.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				token := w.Token()
				dead, err := w.Explorer().TokenBalance(ctx, models.DeadAddress, token)
				if err != nil {
					return nil, err
				}
				zero, err := w.Explorer().TokenBalance(ctx, models.ZeroAddress, token)
				if err != nil {
					return nil, err
				}
				total := dead.RawValue.Add(zero.RawValue).Shift(-info.Decimals)
				tf, _ := total.Float64()
				return V{
					"burned":        decStr(total),
					"shareOfSupply": shareOfSupply(tf, supplyFloat(info)),
				}, nil
			}),

		def("supply.contract-verified", "Contract verification",
			"Whether the token contract's source is verified on the explorer.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				sc, err := w.Explorer().SmartContract(ctx, w.Token())
				if err != nil {
					return nil, err
				}
				return V{
					"verified": sc.IsVerified,
					"name":     sc.Name,
					"language": sc.Language,
					"compiler": sc.CompilerVersion,
				}, nil
			}),

		def("supply.creation-tx", "Creation transaction",
			"The transaction that deployed the token contract.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				addr, err := w.AddressInfo(ctx)
				if err != nil {
					return nil, err
				}
				if addr.CreationTxHash == "" {
					return nil, cache.ErrMissingData
				}
				tx, err := w.Explorer().Transaction(ctx, addr.CreationTxHash)
				if err != nil {
					return nil, err
				}
				return V{
					"hash":      tx.Hash,
					"from":      tx.From,
					"timestamp": tx.Timestamp,
					"status":    tx.Status,
				}, nil
			}),

		def("supply.contract-coin-balance", "Contract native balance",
			"Native coin balance held by the token contract itself.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				addr, err := w.AddressInfo(ctx)
				if err != nil {
					return nil, err
				}
				return V{"wei": decStr(addr.CoinBalance)}, nil
			}),

		def("supply.burn-velocity-24h", "Burn velocity",
			"Burned amount in 24h as a share of total supply.",
			CategorySupply,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				burned, _ := analytics.BurnedInWindow(transfers, info.Decimals).Float64()
				return V{"pctOfSupplyPerDay": utils.Round2(utils.SafeDiv(burned, supplyFloat(info)) * 100)}, nil
			}),
	}
}
