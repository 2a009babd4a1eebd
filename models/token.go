package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Well-known sink addresses. Transfers into these are treated as burns.
const (
	ZeroAddress = "0x0000000000000000000000000000000000000000"
	DeadAddress = "0x000000000000000000000000000000000000dEaD"
)

// TokenInfo represents the explorer's view of a token contract.
type TokenInfo struct {
	Address       string          `json:"address"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	Decimals      int32           `json:"decimals"`
	TotalSupply   decimal.Decimal `json:"totalSupply"`
	HoldersCount  int64           `json:"holdersCount"`
	TokenType     string          `json:"tokenType"`
	ExchangeRate  float64         `json:"exchangeRate"`
	CirculatingMC float64         `json:"circulatingMarketCap"`
}

// TokenCounters holds the explorer's aggregate counters for a token.
type TokenCounters struct {
	TokenHoldersCount int64 `json:"tokenHoldersCount"`
	TransfersCount    int64 `json:"transfersCount"`
}

// AddressInfo represents the explorer's view of an account, contract or not.
type AddressInfo struct {
	Hash               string          `json:"hash"`
	IsContract         bool            `json:"isContract"`
	IsVerified         bool            `json:"isVerified"`
	CreatorAddressHash string          `json:"creatorAddressHash"`
	CreationTxHash     string          `json:"creationTxHash"`
	CoinBalance        decimal.Decimal `json:"coinBalance"`
	Name               string          `json:"name"`
}

// AddressCounters holds the explorer's aggregate counters for an address.
type AddressCounters struct {
	TransactionsCount   int64 `json:"transactionsCount"`
	TokenTransfersCount int64 `json:"tokenTransfersCount"`
	GasUsageCount       int64 `json:"gasUsageCount"`
	ValidationsCount    int64 `json:"validationsCount"`
}

// HolderRecord is one row of the token's holder list. The balance is kept
// in raw (unscaled) token units exactly as the explorer reports it.
type HolderRecord struct {
	Address    string          `json:"address"`
	RawBalance decimal.Decimal `json:"rawBalance"`
}

// Balance scales the raw balance by the token's decimals.
func (h HolderRecord) Balance(decimals int32) decimal.Decimal {
	return h.RawBalance.Shift(-decimals)
}

// TransferRecord is one on-chain token transfer event.
type TransferRecord struct {
	Timestamp    time.Time       `json:"timestamp"`
	FromAddress  string          `json:"fromAddress"`
	ToAddress    string          `json:"toAddress"`
	RawValue     decimal.Decimal `json:"rawValue"`
	TokenAddress string          `json:"tokenAddress"`
	TxHash       string          `json:"txHash"`
}

// Value scales the raw transfer value by the token's decimals.
func (t TransferRecord) Value(decimals int32) decimal.Decimal {
	return t.RawValue.Shift(-decimals)
}

// IsBurn reports whether the transfer sends tokens to a known sink.
// Explorers disagree on address casing, so the comparison is
// case-insensitive.
func (t TransferRecord) IsBurn() bool {
	return strings.EqualFold(t.ToAddress, ZeroAddress) || strings.EqualFold(t.ToAddress, DeadAddress)
}

// IsMint reports whether the transfer originates from the zero address.
func (t TransferRecord) IsMint() bool {
	return strings.EqualFold(t.FromAddress, ZeroAddress)
}
