package analytics

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tokenscope/models"
)

func xfer(from, to, rawValue string, age time.Duration) models.TransferRecord {
	return models.TransferRecord{
		Timestamp:   time.Now().Add(-age),
		FromAddress: from,
		ToAddress:   to,
		RawValue:    decimal.RequireFromString(rawValue),
	}
}

func TestChurnPartition(t *testing.T) {
	transfers := []models.TransferRecord{
		xfer("0xa", "0xb", "1", time.Hour), // a sends, b receives
		xfer("0xb", "0xc", "1", time.Hour), // b also sends, c receives
	}
	received, sent := Churn(transfers)

	if len(received) != 1 || received[0] != "0xc" {
		t.Errorf("received = %v, want [0xc]", received)
	}
	if len(sent) != 1 || sent[0] != "0xa" {
		t.Errorf("sent = %v, want [0xa]", sent)
	}
}

func TestChurnEmpty(t *testing.T) {
	received, sent := Churn(nil)
	if len(received) != 0 || len(sent) != 0 {
		t.Errorf("empty churn = %v / %v", received, sent)
	}
}

func TestBurnedInWindow(t *testing.T) {
	transfers := []models.TransferRecord{
		// 2 tokens to the dead sink at 18 decimals.
		xfer("0xa", models.DeadAddress, "2000000000000000000", 10*time.Hour),
		// 1 token to the zero sink.
		xfer("0xb", models.ZeroAddress, "1000000000000000000", 5*time.Hour),
		// Ordinary transfer, not a burn.
		xfer("0xa", "0xb", "9000000000000000000", time.Hour),
	}
	got := BurnedInWindow(transfers, 18)
	if got.String() != "3" {
		t.Errorf("burned = %s, want 3", got)
	}
}

func TestBurnedInWindowCaseInsensitiveSink(t *testing.T) {
	transfers := []models.TransferRecord{
		xfer("0xa", strings.ToLower(models.DeadAddress), "4000000000000000000", time.Hour),
	}
	got := BurnedInWindow(transfers, 18)
	if got.String() != "4" {
		t.Errorf("burned = %s, want 4; sink match must ignore case", got)
	}
}

func TestMintedInWindow(t *testing.T) {
	transfers := []models.TransferRecord{
		xfer(models.ZeroAddress, "0xa", "5000000000000000000", time.Hour),
		xfer("0xa", "0xb", "1000000000000000000", time.Hour),
	}
	got := MintedInWindow(transfers, 18)
	if got.String() != "5" {
		t.Errorf("minted = %s, want 5", got)
	}
}

func TestTotalVolume(t *testing.T) {
	transfers := []models.TransferRecord{
		xfer("0xa", "0xb", "1500000000000000000", time.Hour),
		xfer("0xb", "0xc", "500000000000000000", time.Hour),
	}
	got := TotalVolume(transfers, 18)
	if got.String() != "2" {
		t.Errorf("volume = %s, want 2", got)
	}
}

func TestUniqueEstimatesSmallSets(t *testing.T) {
	var transfers []models.TransferRecord
	for i := 0; i < 50; i++ {
		transfers = append(transfers, xfer(
			fmt.Sprintf("0xsender%d", i),
			fmt.Sprintf("0xreceiver%d", i),
			"1", time.Hour))
	}

	// HLL estimates are exact at these cardinalities.
	if got := UniqueSenders(transfers); got != 50 {
		t.Errorf("unique senders = %d, want 50", got)
	}
	if got := UniqueReceivers(transfers); got != 50 {
		t.Errorf("unique receivers = %d, want 50", got)
	}
	if got := UniqueParticipants(transfers); got != 100 {
		t.Errorf("unique participants = %d, want 100", got)
	}
}
