package cache

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tokenscope/config"
	"tokenscope/internal/dexapi"
	"tokenscope/internal/explorer"
	"tokenscope/internal/transport"
)

const (
	tokenA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	tokenB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// testUpstream serves both explorer and dex paths and counts requests
// per path.
type testUpstream struct {
	srv    *httptest.Server
	counts sync.Map
}

func newTestUpstream(t *testing.T) *testUpstream {
	t.Helper()
	u := &testUpstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		v, _ := u.counts.LoadOrStore(key, new(int64))
		atomic.AddInt64(v.(*int64), 1)

		switch {
		case strings.HasSuffix(r.URL.Path, "/holders"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []map[string]interface{}{
					{"address": map[string]interface{}{"hash": "0xh1"}, "value": "100"},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/transfers"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []map[string]interface{}{},
			})
		case strings.Contains(r.URL.Path, "/latest/dex/tokens/"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"pairs": []map[string]interface{}{
					{"dexId": "uniswap", "pairAddress": "0xpair", "priceUsd": "1.5"},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/counters"):
			json.NewEncoder(w).Encode(map[string]string{
				"token_holders_count": "10",
				"transfers_count":     "100",
				"transactions_count":  "5",
			})
		case strings.HasPrefix(r.URL.Path, "/addresses/"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"hash":        strings.TrimPrefix(r.URL.Path, "/addresses/"),
				"is_contract": true,
			})
		default: // /tokens/{addr}
			json.NewEncoder(w).Encode(map[string]string{
				"address":      tokenA,
				"name":         "Test",
				"decimals":     "18",
				"total_supply": "1000000000000000000000",
			})
		}
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *testUpstream) count(pathSuffix string) int64 {
	var total int64
	u.counts.Range(func(k, v interface{}) bool {
		if strings.HasSuffix(k.(string), pathSuffix) {
			total += atomic.LoadInt64(v.(*int64))
		}
		return true
	})
	return total
}

func newTestWorkspace(t *testing.T) (*Workspace, *testUpstream) {
	t.Helper()
	u := newTestUpstream(t)
	httpClient := transport.New(5*time.Second, 0, zerolog.Nop())
	ex := explorer.NewClient(u.srv.URL, httpClient, zerolog.Nop())
	dex := dexapi.NewClient(u.srv.URL, "ethereum", httpClient, zerolog.Nop())
	return New(ex, dex, config.New(), zerolog.Nop()), u
}

func TestWorkspaceRequiresToken(t *testing.T) {
	w, _ := newTestWorkspace(t)

	if _, err := w.TokenInfo(context.Background()); err != ErrNoToken {
		t.Errorf("TokenInfo err = %v, want ErrNoToken", err)
	}
	if _, err := w.EnsureHolders(context.Background()); err != ErrNoToken {
		t.Errorf("EnsureHolders err = %v, want ErrNoToken", err)
	}
}

func TestEnsureHoldersFetchesOnce(t *testing.T) {
	w, u := newTestWorkspace(t)
	w.SelectToken(tokenA)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := w.EnsureHolders(context.Background()); err != nil {
				t.Errorf("EnsureHolders: %v", err)
			}
		}()
	}
	wg.Wait()

	// Third sequential read must also be served from cache.
	holders, err := w.EnsureHolders(context.Background())
	if err != nil {
		t.Fatalf("EnsureHolders: %v", err)
	}
	if len(holders) != 1 || holders[0].Address != "0xh1" {
		t.Errorf("holders = %+v", holders)
	}
	if got := u.count("/holders"); got != 1 {
		t.Errorf("upstream holder fetches = %d, want 1", got)
	}
}

func TestEnsureCoreBatchFetchesOnce(t *testing.T) {
	w, u := newTestWorkspace(t)
	w.SelectToken(tokenA)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := w.TokenInfo(context.Background()); err != nil {
				t.Errorf("TokenInfo: %v", err)
			}
			if _, err := w.TokenCounters(context.Background()); err != nil {
				t.Errorf("TokenCounters: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := u.count("/tokens/" + tokenA); got != 1 {
		t.Errorf("token info fetches = %d, want 1", got)
	}
	if got := u.count("/tokens/" + tokenA + "/counters"); got != 1 {
		t.Errorf("token counter fetches = %d, want 1", got)
	}
}

func TestSelectTokenClearsCache(t *testing.T) {
	w, u := newTestWorkspace(t)
	w.SelectToken(tokenA)
	if _, err := w.EnsureHolders(context.Background()); err != nil {
		t.Fatalf("EnsureHolders: %v", err)
	}

	w.SelectToken(tokenB)
	if _, err := w.EnsureHolders(context.Background()); err != nil {
		t.Fatalf("EnsureHolders after switch: %v", err)
	}

	if got := u.count("/holders"); got != 2 {
		t.Errorf("upstream holder fetches = %d, want 2 (one per token)", got)
	}
	if w.Token() != tokenB {
		t.Errorf("token = %q", w.Token())
	}
}

func TestSelectSameTokenKeepsCache(t *testing.T) {
	w, u := newTestWorkspace(t)
	w.SelectToken(tokenA)
	if _, err := w.EnsureHolders(context.Background()); err != nil {
		t.Fatalf("EnsureHolders: %v", err)
	}

	// Same address, different case: still the same token.
	w.SelectToken(strings.ToUpper(tokenA[:2]) + tokenA[2:])
	if _, err := w.EnsureHolders(context.Background()); err != nil {
		t.Fatalf("EnsureHolders: %v", err)
	}

	if got := u.count("/holders"); got != 1 {
		t.Errorf("upstream holder fetches = %d, want 1", got)
	}
}

func TestEnsureDexCachesPairs(t *testing.T) {
	w, u := newTestWorkspace(t)
	w.SelectToken(tokenA)

	pairs, err := w.EnsureDex(context.Background())
	if err != nil {
		t.Fatalf("EnsureDex: %v", err)
	}
	if len(pairs) != 1 || pairs[0].DexID != "uniswap" {
		t.Errorf("pairs = %+v", pairs)
	}
	if _, err := w.EnsureDex(context.Background()); err != nil {
		t.Fatalf("EnsureDex: %v", err)
	}
	if got := u.count("/latest/dex/tokens/ethereum/" + tokenA); got != 1 {
		t.Errorf("dex fetches = %d, want 1", got)
	}
}

func TestCreatorAddressMissing(t *testing.T) {
	w, _ := newTestWorkspace(t)
	w.SelectToken(tokenA)

	// The upstream fixture has no creator_address_hash.
	if _, err := w.CreatorAddress(context.Background()); err != ErrMissingData {
		t.Errorf("CreatorAddress err = %v, want ErrMissingData", err)
	}
}
