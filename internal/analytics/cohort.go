package analytics

import (
	"github.com/axiomhq/hyperloglog"
	"github.com/shopspring/decimal"

	"tokenscope/models"
)

// Churn partitions the addresses touched by a transfer window into
// received-only (incoming holders) and sent-only (departed holders) via
// set membership over the window's from/to address sets.
func Churn(transfers []models.TransferRecord) (received []string, sent []string) {
	from := make(map[string]bool)
	to := make(map[string]bool)
	for _, t := range transfers {
		from[t.FromAddress] = true
		to[t.ToAddress] = true
	}
	for addr := range to {
		if !from[addr] {
			received = append(received, addr)
		}
	}
	for addr := range from {
		if !to[addr] {
			sent = append(sent, addr)
		}
	}
	return received, sent
}

// UniqueParticipants estimates the number of distinct addresses that sent
// or received within the transfer set.
func UniqueParticipants(transfers []models.TransferRecord) uint64 {
	hll := hyperloglog.New16()
	for _, t := range transfers {
		hll.Insert([]byte(t.FromAddress))
		hll.Insert([]byte(t.ToAddress))
	}
	return hll.Estimate()
}

// UniqueSenders estimates distinct sending addresses.
func UniqueSenders(transfers []models.TransferRecord) uint64 {
	hll := hyperloglog.New16()
	for _, t := range transfers {
		hll.Insert([]byte(t.FromAddress))
	}
	return hll.Estimate()
}

// UniqueReceivers estimates distinct receiving addresses.
func UniqueReceivers(transfers []models.TransferRecord) uint64 {
	hll := hyperloglog.New16()
	for _, t := range transfers {
		hll.Insert([]byte(t.ToAddress))
	}
	return hll.Estimate()
}

// BurnedInWindow sums the scaled value of transfers into the burn sinks.
func BurnedInWindow(transfers []models.TransferRecord, decimals int32) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transfers {
		if t.IsBurn() {
			sum = sum.Add(t.Value(decimals))
		}
	}
	return sum
}

// MintedInWindow sums the scaled value of transfers out of the zero
// address.
func MintedInWindow(transfers []models.TransferRecord, decimals int32) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transfers {
		if t.IsMint() {
			sum = sum.Add(t.Value(decimals))
		}
	}
	return sum
}

// TotalVolume sums the scaled value of every transfer in the set.
func TotalVolume(transfers []models.TransferRecord, decimals int32) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transfers {
		sum = sum.Add(t.Value(decimals))
	}
	return sum
}
