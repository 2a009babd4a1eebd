package stats

import (
	"context"
	"strings"

	"tokenscope/internal/analytics"
	"tokenscope/internal/cache"
	"tokenscope/internal/utils"
	"tokenscope/models"
)

// The explorer exposes no dedicated staking API, so these stats are
// lock/retention proxies built from contract-held balances and holder
// activity windows.
func stakingStats() []Definition {
	return []Definition{
		def("stk.contract-held-share", "Contract-held supply",
			"Share of supply held by contract addresses among the top 20 holders.",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				infos, top, err := holderAddressInfos(ctx, w, 20)
				if err != nil {
					return nil, err
				}
				byAddr := make(map[string]models.AddressInfo, len(infos))
				for _, ai := range infos {
					byAddr[strings.ToLower(ai.Hash)] = ai
				}
				var locked float64
				contracts := 0
				for _, h := range top {
					ai, ok := byAddr[strings.ToLower(h.Address)]
					if !ok || !ai.IsContract {
						continue
					}
					contracts++
					f, _ := h.Balance(info.Decimals).Float64()
					locked += f
				}
				return V{
					"sharePct":  shareOfSupply(locked, supplyFloat(info)),
					"contracts": contracts,
					"checked":   len(top),
					"failed":    len(top) - len(infos),
				}, nil
			}),

		def("stk.contract-holders", "Contract holders in top 20",
			"How many of the top 20 holders are contracts (pools, lockers, vaults).",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				infos, top, err := holderAddressInfos(ctx, w, 20)
				if err != nil {
					return nil, err
				}
				contracts := 0
				for _, ai := range infos {
					if ai.IsContract {
						contracts++
					}
				}
				return V{"contracts": contracts, "checked": len(top)}, nil
			}),

		def("stk.top-holder-type", "Top holder type",
			"Whether the largest holder is a contract or an externally owned account.",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				if len(holders) == 0 {
					return nil, cache.ErrMissingData
				}
				ai, err := w.Explorer().AddressInfo(ctx, holders[0].Address)
				if err != nil {
					return nil, err
				}
				kind := "eoa"
				if ai.IsContract {
					kind = "contract"
				}
				return V{"address": ai.Hash, "type": kind, "name": ai.Name}, nil
			}),

		def("stk.dead-supply-share", "Dead supply share",
			"Share of supply permanently parked in burn sinks.",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				dead, err := w.Explorer().TokenBalance(ctx, models.DeadAddress, w.Token())
				if err != nil {
					return nil, err
				}
				f, _ := dead.RawValue.Shift(-info.Decimals).Float64()
				return V{"sharePct": shareOfSupply(f, supplyFloat(info))}, nil
			}),

		def("stk.holder-retention-24h", "Holder retention 24h",
			"Share of sampled holders that did not move tokens in the last 24 hours.",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				active := make(map[string]bool)
				for _, t := range transfers {
					active[strings.ToLower(t.FromAddress)] = true
				}
				still := 0
				for _, h := range holders {
					if !active[strings.ToLower(h.Address)] {
						still++
					}
				}
				return V{
					"retainedPct": utils.Round2(utils.SafeDiv(float64(still), float64(len(holders))) * 100),
					"sampled":     len(holders),
				}, nil
			}),

		def("stk.dormant-top-share", "Dormant top-holder supply",
			"Supply share of sampled holders with no outgoing transfer in 24h.",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				holders, err := w.EnsureHolders(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				active := make(map[string]bool)
				for _, t := range transfers {
					active[strings.ToLower(t.FromAddress)] = true
				}
				var dormant float64
				for _, h := range holders {
					if active[strings.ToLower(h.Address)] {
						continue
					}
					f, _ := h.Balance(info.Decimals).Float64()
					dormant += f
				}
				return V{"sharePct": shareOfSupply(dormant, supplyFloat(info))}, nil
			}),

		def("stk.locked-top10", "Contract-held supply in top 10",
			"Supply share of contract addresses among the ten largest holders.",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				info, err := w.TokenInfo(ctx)
				if err != nil {
					return nil, err
				}
				infos, top, err := holderAddressInfos(ctx, w, 10)
				if err != nil {
					return nil, err
				}
				byAddr := make(map[string]models.AddressInfo, len(infos))
				for _, ai := range infos {
					byAddr[strings.ToLower(ai.Hash)] = ai
				}
				var locked float64
				for _, h := range top {
					if ai, ok := byAddr[strings.ToLower(h.Address)]; ok && ai.IsContract {
						f, _ := h.Balance(info.Decimals).Float64()
						locked += f
					}
				}
				return V{"sharePct": shareOfSupply(locked, supplyFloat(info))}, nil
			}),

		def("stk.verified-top-contracts", "Verified contracts in top 10",
			"Among contract holders in the top 10, how many are source-verified.",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				infos, _, err := holderAddressInfos(ctx, w, 10)
				if err != nil {
					return nil, err
				}
				var contracts []string
				for _, ai := range infos {
					if ai.IsContract {
						contracts = append(contracts, ai.Hash)
					}
				}
				tasks := make([]func(context.Context) (bool, error), len(contracts))
				for i, addr := range contracts {
					addr := addr
					tasks[i] = func(ctx context.Context) (bool, error) {
						sc, err := w.Explorer().SmartContract(ctx, addr)
						if err != nil {
							return false, err
						}
						return sc.IsVerified, nil
					}
				}
				results, failures := utils.JoinAll(ctx, w.Params().FanOutLimit, tasks)
				verified := 0
				for _, ok := range results {
					if ok {
						verified++
					}
				}
				return V{
					"verified":  verified,
					"contracts": len(contracts),
					"failed":    len(failures),
				}, nil
			}),

		def("stk.holder-stability", "Holder stability",
			"Net 24h churn relative to the total holder count.",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				counters, err := w.TokenCounters(ctx)
				if err != nil {
					return nil, err
				}
				transfers, err := w.EnsureTransfers24h(ctx)
				if err != nil {
					return nil, err
				}
				received, sent := analytics.Churn(transfers)
				net := float64(len(received) - len(sent))
				return V{
					"netChurn": len(received) - len(sent),
					"churnPct": utils.Round2(utils.SafeDiv(net, float64(counters.TokenHoldersCount)) * 100),
				}, nil
			}),

		def("stk.transfer-log-activity", "Contract event activity",
			"Recent event log entries emitted by the token contract.",
			CategoryStaking,
			func(ctx context.Context, w *cache.Workspace) (interface{}, error) {
				logs, err := w.Explorer().TokenLogs(ctx, w.Token(), w.Params().XferPageSize)
				if err != nil {
					return nil, err
				}
				topics := make(map[string]int)
				for _, l := range logs {
					if len(l.Topics) > 0 {
						topics[l.Topics[0]]++
					}
				}
				return V{"sampledLogs": len(logs), "distinctTopics": len(topics)}, nil
			}),
	}
}
