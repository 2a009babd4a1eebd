package stats

import (
	"context"
	"strings"
	"time"

	"tokenscope/internal/cache"
	"tokenscope/internal/utils"
	"tokenscope/models"
)

// creatorTokenFlows walks the creator's bounded token-transfer history
// and splits the rows touching the selected token into inflow/outflow.
func creatorTokenFlows(ctx context.Context, w *cache.Workspace, creator string) (in, out []models.TransferRecord, err error) {
	p := w.Params()
	history, err := w.Explorer().FetchAddressTokenTransfers(ctx, creator, p.XferPageSize, p.WalletMaxPages)
	if err != nil {
		return nil, nil, err
	}
	token := w.Token()
	for _, t := range history {
		if !strings.EqualFold(t.TokenAddress, token) {
			continue
		}
		if strings.EqualFold(t.FromAddress, creator) {
			out = append(out, t)
		}
		if strings.EqualFold(t.ToAddress, creator) {
			in = append(in, t)
		}
	}
	return in, out, nil
}

func creatorStats() []Definition {
	return []Definition{
		def("cr.address", "Creator address",
			"The address that deployed the token contract.",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				return V{"address": creator}, nil
			}),

		def("cr.token-balance", "Creator token balance",
			"How much of the token the creator currently holds.",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				bal, err := w.Explorer().TokenBalance(ctx, creator, w.Token())
				if err != nil {
					return nil, err
				}
				scaled := bal.RawValue.Shift(-info.Decimals)
				f, _ := scaled.Float64()
				return V{
					"balance":  decStr(scaled),
					"sharePct": shareOfSupply(f, supplyFloat(info)),
				}, nil
			}),

		def("cr.coin-balance", "Creator native balance",
			"The creator wallet's native coin balance.",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				info, err := w.Explorer().AddressInfo(ctx, creator)
				if err != nil {
					return nil, err
				}
				return V{"wei": decStr(info.CoinBalance), "isContract": info.IsContract}, nil
			}),

		def("cr.tx-count", "Creator transaction count",
			"Lifetime transaction count of the creator wallet.",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				counters, err := w.Explorer().AddressCounters(ctx, creator)
				if err != nil {
					return nil, err
				}
				return V{
					"transactions":   counters.TransactionsCount,
					"tokenTransfers": counters.TokenTransfersCount,
				}, nil
			}),

		def("cr.recent-activity", "Creator recent activity",
			"Creator transactions within the last 7 days (bounded walk).",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				p := w.Params()
				txs, err := w.Explorer().FetchAddressTransactions(ctx, creator, p.XferPageSize, p.WalletMaxPages)
				if err != nil {
					return nil, err
				}
				cutoff := time.Now().Add(-7 * 24 * time.Hour)
				recent := 0
				for _, tx := range txs {
					if tx.Timestamp.After(cutoff) {
						recent++
					}
				}
				return V{"last7d": recent, "sampled": len(txs)}, nil
			}),

		def("cr.token-flows", "Creator token flows",
			"Token amounts the creator has received and sent over its bounded history.",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				in, out, err := creatorTokenFlows(ctx, w, creator)
				if err != nil {
					return nil, err
				}
				received := decStr(sumTransfers(in, info.Decimals))
				sent := decStr(sumTransfers(out, info.Decimals))
				return V{
					"received":     received,
					"sent":         sent,
					"inflowCount":  len(in),
					"outflowCount": len(out),
				}, nil
			}),

		def("cr.sell-pressure", "Creator sell pressure",
			"Share of the creator's received tokens already sent away.",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				in, out, err := creatorTokenFlows(ctx, w, creator)
				if err != nil {
					return nil, err
				}
				received, _ := sumTransfers(in, info.Decimals).Float64()
				sent, _ := sumTransfers(out, info.Decimals).Float64()
				return V{"soldPct": utils.Round2(utils.SafeDiv(sent, received) * 100)}, nil
			}),

		def("cr.is-contract", "Creator is a contract",
			"Whether the creator address is itself a contract (factory deploys).",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				info, err := w.Explorer().AddressInfo(ctx, creator)
				if err != nil {
					return nil, err
				}
				return V{"isContract": info.IsContract, "name": info.Name}, nil
			}),

		def("cr.wallet-age", "Creator wallet age",
			"Age of the oldest transaction in the creator's bounded history.",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				p := w.Params()
				txs, err := w.Explorer().FetchAddressTransactions(ctx, creator, p.XferPageSize, p.WalletMaxPages)
				if err != nil {
					return nil, err
				}
				if len(txs) == 0 {
					return nil, cache.ErrMissingData
				}
				oldest := txs[0].Timestamp
				for _, tx := range txs[1:] {
					if !tx.Timestamp.IsZero() && tx.Timestamp.Before(oldest) {
						oldest = tx.Timestamp
					}
				}
				return V{
					"oldestSeen": oldest,
					"ageDays":    int(time.Since(oldest).Hours() / 24),
					"sampled":    len(txs),
				}, nil
			}),

		def("cr.other-tokens", "Creator token diversity",
			"Distinct tokens seen in the creator's bounded transfer history.",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				p := w.Params()
				history, err := w.Explorer().FetchAddressTokenTransfers(ctx, creator, p.XferPageSize, p.WalletMaxPages)
				if err != nil {
					return nil, err
				}
				tokens := make(map[string]bool)
				for _, t := range history {
					if t.TokenAddress != "" {
						tokens[strings.ToLower(t.TokenAddress)] = true
					}
				}
				return V{"distinctTokens": len(tokens), "sampled": len(history)}, nil
			}),

		def("cr.24h-activity", "Creator activity vs token activity",
			"Transfers in the 24h window that touch the creator wallet.",
			CategoryCreator,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				creator, err := w.CreatorAddress(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				touched := 0
				for _, t := range transfers {
					if strings.EqualFold(t.FromAddress, creator) || strings.EqualFold(t.ToAddress, creator) {
						touched++
					}
				}
				return V{"creatorTransfers": touched, "windowTransfers": len(transfers)}, nil
			}),
	}
}
