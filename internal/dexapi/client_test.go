package dexapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tokenscope/internal/transport"
)

func TestTokenPairsDecodes(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"pairs": [
			{"dexId": "uniswap", "pairAddress": "0xpair", "priceUsd": "2.5",
			 "baseToken": {"symbol": "TST"}, "quoteToken": {"symbol": "WETH"},
			 "liquidity": {"usd": 50000, "base": 10000, "quote": 12.5},
			 "volume": {"h24": 1234.5},
			 "priceChange": {"h1": -1.5, "h24": 3.2},
			 "txns": {"h24": {"buys": 10, "sells": 4}}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "ethereum", transport.New(5*time.Second, 0, zerolog.Nop()), zerolog.Nop())
	pairs, err := c.TokenPairs(context.Background(), "0xtoken")
	if err != nil {
		t.Fatalf("TokenPairs: %v", err)
	}
	if gotPath != "/latest/dex/tokens/ethereum/0xtoken" {
		t.Errorf("path = %q", gotPath)
	}
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs", len(pairs))
	}
	p := pairs[0]
	if p.DexID != "uniswap" || p.Price() != 2.5 || p.Liquidity.USD != 50000 {
		t.Errorf("pair = %+v", p)
	}
	if p.Txns.H24.Buys != 10 || p.Txns.H24.Sells != 4 {
		t.Errorf("txns = %+v", p.Txns)
	}
}

func TestTokenPairsNullMeansUnlisted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pairs": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "ethereum", transport.New(5*time.Second, 0, zerolog.Nop()), zerolog.Nop())
	pairs, err := c.TokenPairs(context.Background(), "0xtoken")
	if err != nil {
		t.Fatalf("TokenPairs: %v", err)
	}
	if pairs == nil || len(pairs) != 0 {
		t.Errorf("pairs = %v, want empty non-nil slice", pairs)
	}
}

func TestPriceMalformed(t *testing.T) {
	if (Pair{PriceUsd: ""}).Price() != 0 {
		t.Error("empty price must be 0")
	}
	if (Pair{PriceUsd: "abc"}).Price() != 0 {
		t.Error("malformed price must be 0")
	}
}

func TestPrimaryPairPicksDeepest(t *testing.T) {
	pairs := []Pair{
		{PairAddress: "0xa", Liquidity: Liquidity{USD: 100}},
		{PairAddress: "0xb", Liquidity: Liquidity{USD: 9000}},
		{PairAddress: "0xc", Liquidity: Liquidity{USD: 50}},
	}
	best, ok := PrimaryPair(pairs)
	if !ok || best.PairAddress != "0xb" {
		t.Errorf("primary = %+v, ok = %v", best, ok)
	}

	if _, ok := PrimaryPair(nil); ok {
		t.Error("no pairs must report ok=false")
	}
}
