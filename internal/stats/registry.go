// Package stats holds the catalog of computable token statistics and the
// runner that executes them inside a tracked network session.
package stats

import (
	"context"
	"fmt"
	"sort"

	"tokenscope/internal/cache"
	"tokenscope/models"
)

// Category groups stats for discoverability only; it has no effect on
// computation.
type Category string

const (
	CategorySupply       Category = "supply"
	CategoryDistribution Category = "distribution"
	CategoryActivity     Category = "activity"
	CategoryLiquidity    Category = "liquidity"
	CategoryMarket       Category = "market"
	CategoryCreator      Category = "creator"
	CategoryStaking      Category = "staking"
)

// ComputeFn produces a stat value by pulling through the workspace cache,
// calling the paginated fetchers as needed and applying the analytics
// functions.
type ComputeFn func(ctx context.Context, w *cache.Workspace) (interface{}, error)

// Definition maps a stable stat id to its label, description and
// computation. Definitions are immutable and registered once at process
// start.
type Definition struct {
	ID          string
	Label       string
	Description string
	Category    Category
	Compute     ComputeFn
}

// V is the JSON-ready shape most stat values are returned as.
type V = map[string]interface{}

// Registry is the typed dispatch table from stat id to definition.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry builds the full catalog. Duplicate ids are a programming
// error and panic at construction.
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]Definition)}
	r.register(supplyStats()...)
	r.register(distributionStats()...)
	r.register(activityStats()...)
	r.register(liquidityStats()...)
	r.register(marketStats()...)
	r.register(creatorStats()...)
	r.register(stakingStats()...)
	return r
}

func (r *Registry) register(defs ...Definition) {
	for _, def := range defs {
		if def.ID == "" || def.Compute == nil {
			panic(fmt.Sprintf("stat %q: incomplete definition", def.ID))
		}
		if _, dup := r.defs[def.ID]; dup {
			panic(fmt.Sprintf("stat %q: duplicate id", def.ID))
		}
		r.defs[def.ID] = def
		r.order = append(r.order, def.ID)
	}
}

// Get looks up a definition by id.
func (r *Registry) Get(id string) (Definition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// Len returns the number of registered stats.
func (r *Registry) Len() int { return len(r.defs) }

// List returns the catalog sorted by category then label.
func (r *Registry) List() []models.StatInfo {
	out := make([]models.StatInfo, 0, len(r.defs))
	for _, id := range r.order {
		def := r.defs[id]
		out = append(out, models.StatInfo{
			ID:          def.ID,
			Label:       def.Label,
			Description: def.Description,
			Category:    string(def.Category),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Label < out[j].Label
	})
	return out
}
