package explorer

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"tokenscope/models"
)

// Raw response structures matching the explorer's v2 JSON schema.
// Defaulting for absent fields happens here, in the ToModel converters,
// so business logic never sees missing arrays or numeric strings.

// rawPage is the explorer's generic pagination envelope. next_page_params
// is opaque: it is echoed back verbatim as query parameters and never
// constructed locally.
type rawPage[T any] struct {
	Items          []T                    `json:"items"`
	NextPageParams map[string]interface{} `json:"next_page_params"`
}

type rawAddressRef struct {
	Hash       string `json:"hash"`
	Name       string `json:"name"`
	IsContract bool   `json:"is_contract"`
}

type rawTokenRef struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals string `json:"decimals"`
}

type rawTokenInfo struct {
	Address              string `json:"address"`
	Name                 string `json:"name"`
	Symbol               string `json:"symbol"`
	Decimals             string `json:"decimals"`
	TotalSupply          string `json:"total_supply"`
	Holders              string `json:"holders"`
	Type                 string `json:"type"`
	ExchangeRate         string `json:"exchange_rate"`
	CirculatingMarketCap string `json:"circulating_market_cap"`
}

func (r rawTokenInfo) ToModel() models.TokenInfo {
	return models.TokenInfo{
		Address:       r.Address,
		Name:          r.Name,
		Symbol:        r.Symbol,
		Decimals:      parseInt32(r.Decimals),
		TotalSupply:   parseDecimal(r.TotalSupply),
		HoldersCount:  parseInt64(r.Holders),
		TokenType:     r.Type,
		ExchangeRate:  parseFloat(r.ExchangeRate),
		CirculatingMC: parseFloat(r.CirculatingMarketCap),
	}
}

type rawTokenCounters struct {
	TokenHoldersCount string `json:"token_holders_count"`
	TransfersCount    string `json:"transfers_count"`
}

func (r rawTokenCounters) ToModel() models.TokenCounters {
	return models.TokenCounters{
		TokenHoldersCount: parseInt64(r.TokenHoldersCount),
		TransfersCount:    parseInt64(r.TransfersCount),
	}
}

type rawAddressInfo struct {
	Hash               string `json:"hash"`
	IsContract         bool   `json:"is_contract"`
	IsVerified         bool   `json:"is_verified"`
	Name               string `json:"name"`
	CoinBalance        string `json:"coin_balance"`
	CreatorAddressHash string `json:"creator_address_hash"`
	CreationTxHash     string `json:"creation_tx_hash"`
}

func (r rawAddressInfo) ToModel() models.AddressInfo {
	return models.AddressInfo{
		Hash:               r.Hash,
		IsContract:         r.IsContract,
		IsVerified:         r.IsVerified,
		Name:               r.Name,
		CoinBalance:        parseDecimal(r.CoinBalance),
		CreatorAddressHash: r.CreatorAddressHash,
		CreationTxHash:     r.CreationTxHash,
	}
}

type rawAddressCounters struct {
	TransactionsCount   string `json:"transactions_count"`
	TokenTransfersCount string `json:"token_transfers_count"`
	GasUsageCount       string `json:"gas_usage_count"`
	ValidationsCount    string `json:"validations_count"`
}

func (r rawAddressCounters) ToModel() models.AddressCounters {
	return models.AddressCounters{
		TransactionsCount:   parseInt64(r.TransactionsCount),
		TokenTransfersCount: parseInt64(r.TokenTransfersCount),
		GasUsageCount:       parseInt64(r.GasUsageCount),
		ValidationsCount:    parseInt64(r.ValidationsCount),
	}
}

type rawHolder struct {
	Address rawAddressRef `json:"address"`
	Value   string        `json:"value"`
}

func (r rawHolder) ToModel() models.HolderRecord {
	return models.HolderRecord{
		Address:    r.Address.Hash,
		RawBalance: parseDecimal(r.Value),
	}
}

type rawTransferTotal struct {
	Value    string `json:"value"`
	Decimals string `json:"decimals"`
}

type rawTransfer struct {
	Timestamp time.Time        `json:"timestamp"`
	From      rawAddressRef    `json:"from"`
	To        rawAddressRef    `json:"to"`
	Total     rawTransferTotal `json:"total"`
	Token     rawTokenRef      `json:"token"`
	TxHash    string           `json:"transaction_hash"`
}

func (r rawTransfer) ToModel() models.TransferRecord {
	return models.TransferRecord{
		Timestamp:    r.Timestamp,
		FromAddress:  r.From.Hash,
		ToAddress:    r.To.Hash,
		RawValue:     parseDecimal(r.Total.Value),
		TokenAddress: r.Token.Address,
		TxHash:       r.TxHash,
	}
}

type rawTransaction struct {
	Hash      string        `json:"hash"`
	From      rawAddressRef `json:"from"`
	To        rawAddressRef `json:"to"`
	Value     string        `json:"value"`
	Timestamp time.Time     `json:"timestamp"`
	Status    string        `json:"status"`
	GasUsed   string        `json:"gas_used"`
	Method    string        `json:"method"`
}

// Transaction is the normalized view of one chain transaction.
type Transaction struct {
	Hash      string          `json:"hash"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Value     decimal.Decimal `json:"value"`
	Timestamp time.Time       `json:"timestamp"`
	Status    string          `json:"status"`
	GasUsed   int64           `json:"gasUsed"`
	Method    string          `json:"method"`
}

func (r rawTransaction) ToModel() Transaction {
	return Transaction{
		Hash:      r.Hash,
		From:      r.From.Hash,
		To:        r.To.Hash,
		Value:     parseDecimal(r.Value),
		Timestamp: r.Timestamp,
		Status:    r.Status,
		GasUsed:   parseInt64(r.GasUsed),
		Method:    r.Method,
	}
}

type rawSmartContract struct {
	Name            string `json:"name"`
	IsVerified      bool   `json:"is_verified"`
	Language        string `json:"language"`
	CompilerVersion string `json:"compiler_version"`
}

// SmartContract is the normalized view of a verified contract.
type SmartContract struct {
	Name            string `json:"name"`
	IsVerified      bool   `json:"isVerified"`
	Language        string `json:"language"`
	CompilerVersion string `json:"compilerVersion"`
}

func (r rawSmartContract) ToModel() SmartContract {
	return SmartContract{
		Name:            r.Name,
		IsVerified:      r.IsVerified,
		Language:        r.Language,
		CompilerVersion: r.CompilerVersion,
	}
}

type rawTokenBalance struct {
	Token rawTokenRef `json:"token"`
	Value string      `json:"value"`
}

// TokenBalance is one row of an address's token balance list.
type TokenBalance struct {
	TokenAddress string          `json:"tokenAddress"`
	Symbol       string          `json:"symbol"`
	RawValue     decimal.Decimal `json:"rawValue"`
	Decimals     int32           `json:"decimals"`
}

func (r rawTokenBalance) ToModel() TokenBalance {
	return TokenBalance{
		TokenAddress: r.Token.Address,
		Symbol:       r.Token.Symbol,
		RawValue:     parseDecimal(r.Value),
		Decimals:     parseInt32(r.Token.Decimals),
	}
}

type rawLogEntry struct {
	TxHash  string   `json:"transaction_hash"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
	Address rawAddressRef `json:"address"`
}

// LogEntry is one contract event log row.
type LogEntry struct {
	TxHash  string   `json:"txHash"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
	Address string   `json:"address"`
}

func (r rawLogEntry) ToModel() LogEntry {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	return LogEntry{TxHash: r.TxHash, Topics: topics, Data: r.Data, Address: r.Address.Hash}
}

// Numeric fields arrive as strings; absent or malformed values default to
// zero rather than failing the whole payload.

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseInt64(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseInt32(s string) int32 {
	return int32(parseInt64(s))
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
