package explorer

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"tokenscope/models"
)

// walkPages runs the shared page-walking shape: request page, extract
// items and next cursor, apply the caller's stop predicate, continue or
// halt. A zero-item page or a missing cursor means end of data, and the
// page bound guarantees termination even if the upstream never returns
// an empty cursor.
func walkPages[T any](ctx context.Context, c *Client, firstURL string, maxPages int, visit func(items []T) bool) error {
	next := firstURL
	for page := 0; page < maxPages; page++ {
		var p rawPage[T]
		if err := c.http.GetJSON(ctx, next, &p); err != nil {
			return err
		}
		if len(p.Items) == 0 {
			return nil
		}
		if !visit(p.Items) {
			return nil
		}
		if len(p.NextPageParams) == 0 {
			return nil
		}
		next = firstURL + "&" + encodeCursor(p.NextPageParams)
	}
	return nil
}

// encodeCursor turns next_page_params back into query parameters exactly
// as received; the cursor is opaque and never constructed locally.
func encodeCursor(params map[string]interface{}) string {
	values := url.Values{}
	for k, v := range params {
		if v == nil {
			continue
		}
		values.Set(k, formatCursorValue(v))
	}
	return values.Encode()
}

func formatCursorValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; cursors carry integers, so
		// render without exponent notation.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// FetchHolders walks /tokens/{addr}/holders until the cursor runs out or
// maxPages is reached. No time filter.
func (c *Client) FetchHolders(ctx context.Context, token string, pageSize, maxPages int) ([]models.HolderRecord, error) {
	first := c.url("/tokens/%s/holders", token) + fmt.Sprintf("?limit=%d", pageSize)
	var out []models.HolderRecord
	err := walkPages(ctx, c, first, maxPages, func(items []rawHolder) bool {
		for _, item := range items {
			out = append(out, item.ToModel())
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("holders: %w", err)
	}
	c.log.Debug().Str("token", token).Int("holders", len(out)).Msg("holder walk done")
	return out, nil
}

// FetchTransfersWithin walks /tokens/{addr}/transfers newest-first and
// keeps only transfers at or after now-window. The walk stops at the
// first page whose oldest item falls outside the window.
//
// This early stop assumes the upstream returns pages in monotonically
// non-increasing timestamp order. Out-of-order pages are undefined
// behavior: items already collected stay, later ones may be missed.
func (c *Client) FetchTransfersWithin(ctx context.Context, token string, window time.Duration, pageSize, maxPages int) ([]models.TransferRecord, error) {
	cutoff := time.Now().Add(-window)
	first := c.url("/tokens/%s/transfers", token) + fmt.Sprintf("?limit=%d", pageSize)
	var out []models.TransferRecord
	err := walkPages(ctx, c, first, maxPages, func(items []rawTransfer) bool {
		oldestInWindow := true
		for _, item := range items {
			rec := item.ToModel()
			if rec.Timestamp.Before(cutoff) {
				oldestInWindow = false
				continue
			}
			out = append(out, rec)
		}
		return oldestInWindow
	})
	if err != nil {
		return nil, fmt.Errorf("transfers: %w", err)
	}
	c.log.Debug().Str("token", token).Dur("window", window).Int("transfers", len(out)).Msg("transfer walk done")
	return out, nil
}

// FetchAddressTokenTransfers walks the full token-transfer history of a
// wallet, bounded only by maxPages. Building block for creator and
// holder behavior stats.
func (c *Client) FetchAddressTokenTransfers(ctx context.Context, addr string, pageSize, maxPages int) ([]models.TransferRecord, error) {
	first := c.url("/addresses/%s/token-transfers", addr) + fmt.Sprintf("?limit=%d", pageSize)
	var out []models.TransferRecord
	err := walkPages(ctx, c, first, maxPages, func(items []rawTransfer) bool {
		for _, item := range items {
			out = append(out, item.ToModel())
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("address token transfers: %w", err)
	}
	return out, nil
}

// FetchAddressTransactions walks /addresses/{addr}/transactions under the
// same bounds.
func (c *Client) FetchAddressTransactions(ctx context.Context, addr string, pageSize, maxPages int) ([]Transaction, error) {
	first := c.url("/addresses/%s/transactions", addr) + fmt.Sprintf("?limit=%d", pageSize)
	var out []Transaction
	err := walkPages(ctx, c, first, maxPages, func(items []rawTransaction) bool {
		for _, item := range items {
			out = append(out, item.ToModel())
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("address transactions: %w", err)
	}
	return out, nil
}
