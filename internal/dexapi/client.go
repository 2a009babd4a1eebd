// Package dexapi implements a client for fetching liquidity, price and
// volume data from a DexScreener-style aggregator API.
package dexapi

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"tokenscope/internal/transport"
)

// Client fetches pair data through the instrumented transport.
type Client struct {
	baseURL string
	chainID string
	http    *transport.Client
	log     zerolog.Logger
}

// NewClient creates a DEX aggregator client for one chain.
func NewClient(baseURL, chainID string, http *transport.Client, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		chainID: chainID,
		http:    http,
		log:     log.With().Str("component", "dexapi").Logger(),
	}
}

// TokenPairs fetches every pair the aggregator lists for the token.
// A token with no pairs yields an empty slice, not an error.
func (c *Client) TokenPairs(ctx context.Context, token string) ([]Pair, error) {
	u := fmt.Sprintf("%s/latest/dex/tokens/%s/%s", c.baseURL, c.chainID, token)
	var resp pairsResponse
	if err := c.http.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("dex pairs: %w", err)
	}
	if resp.Pairs == nil {
		return []Pair{}, nil
	}
	c.log.Debug().Str("token", token).Int("pairs", len(resp.Pairs)).Msg("fetched dex pairs")
	return resp.Pairs, nil
}
