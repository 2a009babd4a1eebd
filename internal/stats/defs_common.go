package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"tokenscope/internal/cache"
	"tokenscope/internal/utils"
	"tokenscope/models"
)

func def(id, label, description string, cat Category, fn ComputeFn) Definition {
	return Definition{ID: id, Label: label, Description: description, Category: cat, Compute: fn}
}

// supplyFloat returns the scaled total supply as a float for ratio math.
func supplyFloat(info models.TokenInfo) float64 {
	f, _ := info.TotalSupply.Shift(-info.Decimals).Float64()
	return f
}

func decStr(d decimal.Decimal) string {
	return d.String()
}

// holderAddressInfos fans out address lookups for the top n holders.
// Individual failures are swallowed and excluded from aggregation; only
// a fully failed batch is an error.
func holderAddressInfos(ctx context.Context, w *cache.Workspace, n int) ([]models.AddressInfo, []models.HolderRecord, error) {
	holders, err := w.EnsureHolders(ctx)
	if err != nil {
		return nil, nil, err
	}
	if n > len(holders) {
		n = len(holders)
	}
	top := holders[:n]

	tasks := make([]func(context.Context) (models.AddressInfo, error), len(top))
	for i, h := range top {
		addr := h.Address
		tasks[i] = func(ctx context.Context) (models.AddressInfo, error) {
			return w.Explorer().AddressInfo(ctx, addr)
		}
	}
	infos, failures := utils.JoinAll(ctx, w.Params().FanOutLimit, tasks)
	if len(infos) == 0 && len(failures) > 0 {
		return nil, nil, fmt.Errorf("all %d holder lookups failed: %v", len(failures), failures[0])
	}
	return infos, top, nil
}

// sumTransfers totals the scaled values of a transfer set.
func sumTransfers(transfers []models.TransferRecord, decimals int32) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transfers {
		sum = sum.Add(t.Value(decimals))
	}
	return sum
}

// shareOfSupply is a percentage, guarded against zero supply.
func shareOfSupply(amount, supply float64) float64 {
	return utils.Round2(utils.SafeDiv(amount, supply) * 100)
}
