// Package explorer implements a read-only client for a Blockscout-style
// chain explorer API (".../api/v2"), including the bounded cursor walks
// used to collect holder lists and transfer histories.
package explorer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"tokenscope/internal/transport"
	"tokenscope/models"
)

// Client talks to the explorer through the instrumented transport, so
// every call it makes shows up in the active session's timeline.
type Client struct {
	baseURL string
	http    *transport.Client
	log     zerolog.Logger
}

// NewClient creates an explorer client rooted at baseURL.
func NewClient(baseURL string, http *transport.Client, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    http,
		log:     log.With().Str("component", "explorer").Logger(),
	}
}

func (c *Client) url(format string, args ...interface{}) string {
	escaped := make([]interface{}, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(a))
	}
	return c.baseURL + fmt.Sprintf(format, escaped...)
}

// TokenInfo fetches /tokens/{addr}.
func (c *Client) TokenInfo(ctx context.Context, token string) (models.TokenInfo, error) {
	var raw rawTokenInfo
	if err := c.http.GetJSON(ctx, c.url("/tokens/%s", token), &raw); err != nil {
		return models.TokenInfo{}, fmt.Errorf("token info: %w", err)
	}
	return raw.ToModel(), nil
}

// TokenCounters fetches /tokens/{addr}/counters.
func (c *Client) TokenCounters(ctx context.Context, token string) (models.TokenCounters, error) {
	var raw rawTokenCounters
	if err := c.http.GetJSON(ctx, c.url("/tokens/%s/counters", token), &raw); err != nil {
		return models.TokenCounters{}, fmt.Errorf("token counters: %w", err)
	}
	return raw.ToModel(), nil
}

// AddressInfo fetches /addresses/{addr}.
func (c *Client) AddressInfo(ctx context.Context, addr string) (models.AddressInfo, error) {
	var raw rawAddressInfo
	if err := c.http.GetJSON(ctx, c.url("/addresses/%s", addr), &raw); err != nil {
		return models.AddressInfo{}, fmt.Errorf("address info: %w", err)
	}
	return raw.ToModel(), nil
}

// AddressCounters fetches /addresses/{addr}/counters.
func (c *Client) AddressCounters(ctx context.Context, addr string) (models.AddressCounters, error) {
	var raw rawAddressCounters
	if err := c.http.GetJSON(ctx, c.url("/addresses/%s/counters", addr), &raw); err != nil {
		return models.AddressCounters{}, fmt.Errorf("address counters: %w", err)
	}
	return raw.ToModel(), nil
}

// Transaction fetches /transactions/{hash}.
func (c *Client) Transaction(ctx context.Context, hash string) (Transaction, error) {
	var raw rawTransaction
	if err := c.http.GetJSON(ctx, c.url("/transactions/%s", hash), &raw); err != nil {
		return Transaction{}, fmt.Errorf("transaction: %w", err)
	}
	return raw.ToModel(), nil
}

// SmartContract fetches /smart-contracts/{addr}.
func (c *Client) SmartContract(ctx context.Context, addr string) (SmartContract, error) {
	var raw rawSmartContract
	if err := c.http.GetJSON(ctx, c.url("/smart-contracts/%s", addr), &raw); err != nil {
		return SmartContract{}, fmt.Errorf("smart contract: %w", err)
	}
	return raw.ToModel(), nil
}

// TokenBalance fetches /addresses/{addr}/token-balances filtered to one
// token, returning a zero balance when the address holds none.
func (c *Client) TokenBalance(ctx context.Context, addr, token string) (TokenBalance, error) {
	var raw []rawTokenBalance
	u := c.url("/addresses/%s/token-balances", addr) + "?token=" + url.QueryEscape(token)
	if err := c.http.GetJSON(ctx, u, &raw); err != nil {
		return TokenBalance{}, fmt.Errorf("token balance: %w", err)
	}
	for _, b := range raw {
		if strings.EqualFold(b.Token.Address, token) {
			return b.ToModel(), nil
		}
	}
	return TokenBalance{TokenAddress: token}, nil
}

// TokenLogs fetches the first page of /tokens/{addr}/logs.
func (c *Client) TokenLogs(ctx context.Context, token string, limit int) ([]LogEntry, error) {
	var page rawPage[rawLogEntry]
	u := c.url("/tokens/%s/logs", token) + fmt.Sprintf("?limit=%d", limit)
	if err := c.http.GetJSON(ctx, u, &page); err != nil {
		return nil, fmt.Errorf("token logs: %w", err)
	}
	out := make([]LogEntry, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, item.ToModel())
	}
	return out, nil
}
