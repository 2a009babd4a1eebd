// Package cache implements the per-token memoizing workspace that gives
// stat computations at-most-one-fetch-per-slot semantics within one
// token-browsing session.
package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"tokenscope/config"
	"tokenscope/internal/dexapi"
	"tokenscope/internal/explorer"
	"tokenscope/models"
)

var (
	// ErrNoToken means no token address has been selected yet.
	ErrNoToken = errors.New("no token selected")
	// ErrMissingData means the upstream payload genuinely lacks a required
	// identifier (e.g. the token has no recorded creator).
	ErrMissingData = errors.New("missing data")
)

// entry holds the cached slots for one selected token. Slots are filled
// at most once and never mutated afterward; the whole entry is discarded
// when the selected token changes.
type entry struct {
	tokenInfo       *models.TokenInfo
	tokenCounters   *models.TokenCounters
	addressInfo     *models.AddressInfo
	addressCounters *models.AddressCounters
	holders         []models.HolderRecord
	transfers24h    []models.TransferRecord
	dexPairs        []dexapi.Pair
}

// Workspace is the explicit cache object stat computations read through.
// Slot fills are deduplicated with singleflight so concurrent ensures
// trigger a single upstream fetch.
type Workspace struct {
	explorer *explorer.Client
	dex      *dexapi.Client
	cfg      *config.Config
	log      zerolog.Logger

	mu     sync.Mutex
	token  string
	entry  *entry
	flight *singleflight.Group
}

// New creates an empty workspace.
func New(ex *explorer.Client, dex *dexapi.Client, cfg *config.Config, log zerolog.Logger) *Workspace {
	return &Workspace{
		explorer: ex,
		dex:      dex,
		cfg:      cfg,
		log:      log.With().Str("component", "cache").Logger(),
		flight:   &singleflight.Group{},
	}
}

// SelectToken switches the selected token. Selecting a different address
// discards every cached slot atomically; re-selecting the current one is
// a no-op.
func (w *Workspace) SelectToken(addr string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if strings.EqualFold(w.token, addr) && w.entry != nil {
		return
	}
	w.token = addr
	w.entry = &entry{}
	// A fresh group so late fills for the old token can't satisfy waiters
	// for the new one.
	w.flight = &singleflight.Group{}
	w.log.Info().Str("token", addr).Msg("token selected, cache cleared")
}

// Token returns the selected token address.
func (w *Workspace) Token() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.token
}

// Explorer exposes the explorer client for stats that need ad-hoc reads
// (wallet histories, transactions, logs) beyond the cached slots.
func (w *Workspace) Explorer() *explorer.Client { return w.explorer }

// Dex exposes the DEX aggregator client.
func (w *Workspace) Dex() *dexapi.Client { return w.dex }

// Params exposes the page-size and bound configuration.
func (w *Workspace) Params() *config.Config { return w.cfg }

func (w *Workspace) snapshot() (string, *entry, *singleflight.Group, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.token == "" || w.entry == nil {
		return "", nil, nil, ErrNoToken
	}
	return w.token, w.entry, w.flight, nil
}

// EnsureCore fills the four core slots (token info, token counters,
// address info, address counters) as one parallel batch. Nearly every
// stat needs at least one of them, so they are fetched together.
func (w *Workspace) EnsureCore(ctx context.Context) error {
	token, e, flight, err := w.snapshot()
	if err != nil {
		return err
	}
	w.mu.Lock()
	filled := e.tokenInfo != nil
	w.mu.Unlock()
	if filled {
		return nil
	}

	_, err, _ = flight.Do("core", func() (interface{}, error) {
		var (
			info     models.TokenInfo
			counters models.TokenCounters
			addr     models.AddressInfo
			addrCnt  models.AddressCounters
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			info, err = w.explorer.TokenInfo(gctx, token)
			return err
		})
		g.Go(func() error {
			var err error
			counters, err = w.explorer.TokenCounters(gctx, token)
			return err
		})
		g.Go(func() error {
			var err error
			addr, err = w.explorer.AddressInfo(gctx, token)
			return err
		})
		g.Go(func() error {
			var err error
			addrCnt, err = w.explorer.AddressCounters(gctx, token)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		w.mu.Lock()
		if w.entry == e {
			e.tokenInfo = &info
			e.tokenCounters = &counters
			e.addressInfo = &addr
			e.addressCounters = &addrCnt
		}
		w.mu.Unlock()
		return nil, nil
	})
	return err
}

// TokenInfo returns the cached token info, filling the core batch on the
// first read.
func (w *Workspace) TokenInfo(ctx context.Context) (models.TokenInfo, error) {
	if err := w.EnsureCore(ctx); err != nil {
		return models.TokenInfo{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.entry == nil || w.entry.tokenInfo == nil {
		return models.TokenInfo{}, ErrNoToken
	}
	return *w.entry.tokenInfo, nil
}

// TokenCounters returns the cached token counters.
func (w *Workspace) TokenCounters(ctx context.Context) (models.TokenCounters, error) {
	if err := w.EnsureCore(ctx); err != nil {
		return models.TokenCounters{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.entry == nil || w.entry.tokenCounters == nil {
		return models.TokenCounters{}, ErrNoToken
	}
	return *w.entry.tokenCounters, nil
}

// AddressInfo returns the cached explorer view of the token contract.
func (w *Workspace) AddressInfo(ctx context.Context) (models.AddressInfo, error) {
	if err := w.EnsureCore(ctx); err != nil {
		return models.AddressInfo{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.entry == nil || w.entry.addressInfo == nil {
		return models.AddressInfo{}, ErrNoToken
	}
	return *w.entry.addressInfo, nil
}

// AddressCounters returns the cached address counters.
func (w *Workspace) AddressCounters(ctx context.Context) (models.AddressCounters, error) {
	if err := w.EnsureCore(ctx); err != nil {
		return models.AddressCounters{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.entry == nil || w.entry.addressCounters == nil {
		return models.AddressCounters{}, ErrNoToken
	}
	return *w.entry.addressCounters, nil
}

// EnsureHolders returns the paged holder list, walking the upstream on
// the first read only.
func (w *Workspace) EnsureHolders(ctx context.Context) ([]models.HolderRecord, error) {
	token, e, flight, err := w.snapshot()
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	cached := e.holders
	w.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := flight.Do("holders", func() (interface{}, error) {
		holders, err := w.explorer.FetchHolders(ctx, token, w.cfg.HolderPageSize, w.cfg.HolderMaxPages)
		if err != nil {
			return nil, err
		}
		if holders == nil {
			holders = []models.HolderRecord{}
		}
		w.mu.Lock()
		if w.entry == e {
			e.holders = holders
		}
		w.mu.Unlock()
		return holders, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.HolderRecord), nil
}

// EnsureTransfers24h returns the token's transfers from the last 24
// hours, fetched once per token selection.
func (w *Workspace) EnsureTransfers24h(ctx context.Context) ([]models.TransferRecord, error) {
	token, e, flight, err := w.snapshot()
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	cached := e.transfers24h
	w.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := flight.Do("transfers24h", func() (interface{}, error) {
		transfers, err := w.explorer.FetchTransfersWithin(ctx, token, 24*time.Hour, w.cfg.XferPageSize, w.cfg.XferMaxPages)
		if err != nil {
			return nil, err
		}
		if transfers == nil {
			transfers = []models.TransferRecord{}
		}
		w.mu.Lock()
		if w.entry == e {
			e.transfers24h = transfers
		}
		w.mu.Unlock()
		return transfers, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.TransferRecord), nil
}

// EnsureDex returns the token's DEX pair data, fetched once per token
// selection.
func (w *Workspace) EnsureDex(ctx context.Context) ([]dexapi.Pair, error) {
	token, e, flight, err := w.snapshot()
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	cached := e.dexPairs
	w.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := flight.Do("dex", func() (interface{}, error) {
		pairs, err := w.dex.TokenPairs(ctx, token)
		if err != nil {
			return nil, err
		}
		w.mu.Lock()
		if w.entry == e {
			e.dexPairs = pairs
		}
		w.mu.Unlock()
		return pairs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dexapi.Pair), nil
}

// CreatorAddress returns the address that deployed the token contract.
func (w *Workspace) CreatorAddress(ctx context.Context) (string, error) {
	info, err := w.AddressInfo(ctx)
	if err != nil {
		return "", err
	}
	if info.CreatorAddressHash == "" {
		return "", ErrMissingData
	}
	return info.CreatorAddressHash, nil
}
