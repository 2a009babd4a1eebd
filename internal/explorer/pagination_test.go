package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tokenscope/internal/transport"
)

const testToken = "0x1111111111111111111111111111111111111111"

func newTestExplorer(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	httpClient := transport.New(5*time.Second, 0, zerolog.Nop())
	return NewClient(srv.URL, httpClient, zerolog.Nop()), srv
}

func holderItem(addr, value string) map[string]interface{} {
	return map[string]interface{}{
		"address": map[string]interface{}{"hash": addr},
		"value":   value,
	}
}

func transferItem(ts time.Time, from, to, value string) map[string]interface{} {
	return map[string]interface{}{
		"timestamp": ts.Format(time.RFC3339),
		"from":      map[string]interface{}{"hash": from},
		"to":        map[string]interface{}{"hash": to},
		"total":     map[string]interface{}{"value": value},
		"token":     map[string]interface{}{"address": testToken},
	}
}

func writePage(w http.ResponseWriter, items []map[string]interface{}, next map[string]interface{}) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":            items,
		"next_page_params": next,
	})
}

func TestFetchHoldersEchoesCursorVerbatim(t *testing.T) {
	var secondQuery map[string][]string
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			writePage(w, []map[string]interface{}{holderItem("0xaaa", "100")}, map[string]interface{}{
				"items_count":  50,
				"value":        "900000000000000000000",
				"block_number": 123456789012345,
			})
		default:
			secondQuery = r.URL.Query()
			writePage(w, []map[string]interface{}{holderItem("0xbbb", "50")}, nil)
		}
	})
	c, _ := newTestExplorer(t, handler)

	holders, err := c.FetchHolders(context.Background(), testToken, 50, 4)
	if err != nil {
		t.Fatalf("FetchHolders: %v", err)
	}
	if len(holders) != 2 {
		t.Fatalf("got %d holders, want 2", len(holders))
	}
	if calls != 2 {
		t.Fatalf("made %d requests, want 2", calls)
	}

	// The opaque cursor must come back exactly as received, including
	// large integers without exponent notation.
	if got := secondQuery["items_count"]; len(got) != 1 || got[0] != "50" {
		t.Errorf("items_count = %v", got)
	}
	if got := secondQuery["value"]; len(got) != 1 || got[0] != "900000000000000000000" {
		t.Errorf("value = %v", got)
	}
	if got := secondQuery["block_number"]; len(got) != 1 || got[0] != "123456789012345" {
		t.Errorf("block_number = %v", got)
	}
}

func TestFetchHoldersStopsAtPageBound(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Upstream that never runs out of pages.
		writePage(w, []map[string]interface{}{holderItem(fmt.Sprintf("0x%d", calls), "1")},
			map[string]interface{}{"items_count": calls * 50})
	})
	c, _ := newTestExplorer(t, handler)

	holders, err := c.FetchHolders(context.Background(), testToken, 50, 3)
	if err != nil {
		t.Fatalf("FetchHolders: %v", err)
	}
	if calls != 3 {
		t.Errorf("made %d requests, want exactly the page bound of 3", calls)
	}
	if len(holders) != 3 {
		t.Errorf("got %d holders, want 3", len(holders))
	}
}

func TestFetchHoldersStopsOnEmptyPage(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writePage(w, nil, map[string]interface{}{"items_count": 50})
	})
	c, _ := newTestExplorer(t, handler)

	holders, err := c.FetchHolders(context.Background(), testToken, 50, 4)
	if err != nil {
		t.Fatalf("FetchHolders: %v", err)
	}
	if len(holders) != 0 {
		t.Errorf("got %d holders, want 0", len(holders))
	}
	if calls != 1 {
		t.Errorf("made %d requests, want 1", calls)
	}
}

func TestFetchHoldersPropagatesHTTPError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c, _ := newTestExplorer(t, handler)

	if _, err := c.FetchHolders(context.Background(), testToken, 50, 4); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestFetchTransfersWithinStopsPastCutoff(t *testing.T) {
	now := time.Now()
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Newest-first page straddling the 24h cutoff. The walk must not
		// request another page once an out-of-window item is seen.
		writePage(w, []map[string]interface{}{
			transferItem(now.Add(-1*time.Hour), "0xaaa", "0xbbb", "10"),
			transferItem(now.Add(-23*time.Hour), "0xbbb", "0xccc", "20"),
			transferItem(now.Add(-30*time.Hour), "0xccc", "0xddd", "30"),
		}, map[string]interface{}{"items_count": 50})
	})
	c, _ := newTestExplorer(t, handler)

	transfers, err := c.FetchTransfersWithin(context.Background(), testToken, 24*time.Hour, 50, 10)
	if err != nil {
		t.Fatalf("FetchTransfersWithin: %v", err)
	}
	if calls != 1 {
		t.Errorf("made %d requests, want 1 (cutoff reached on first page)", calls)
	}
	if len(transfers) != 2 {
		t.Fatalf("got %d transfers, want 2 in-window", len(transfers))
	}
	for _, tr := range transfers {
		if tr.Timestamp.Before(now.Add(-24 * time.Hour)) {
			t.Errorf("transfer at %v is outside the window", tr.Timestamp)
		}
	}
}

func TestFetchTransfersWithinFollowsCursorInsideWindow(t *testing.T) {
	now := time.Now()
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			writePage(w, []map[string]interface{}{
				transferItem(now.Add(-1*time.Hour), "0xaaa", "0xbbb", "10"),
			}, map[string]interface{}{"items_count": 50})
		default:
			writePage(w, []map[string]interface{}{
				transferItem(now.Add(-2*time.Hour), "0xbbb", "0xccc", "20"),
			}, nil)
		}
	})
	c, _ := newTestExplorer(t, handler)

	transfers, err := c.FetchTransfersWithin(context.Background(), testToken, 24*time.Hour, 50, 10)
	if err != nil {
		t.Fatalf("FetchTransfersWithin: %v", err)
	}
	if calls != 2 {
		t.Errorf("made %d requests, want 2", calls)
	}
	if len(transfers) != 2 {
		t.Errorf("got %d transfers, want 2", len(transfers))
	}
}
