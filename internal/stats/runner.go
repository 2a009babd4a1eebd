package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tokenscope/internal/cache"
	"tokenscope/internal/session"
	"tokenscope/models"
)

var (
	// ErrUnknownStat means the requested id is not in the registry.
	ErrUnknownStat = errors.New("unknown stat")
	// ErrRunInFlight means a stat run is already executing. Runs are not
	// queued; serializing them is the caller's responsibility.
	ErrRunInFlight = errors.New("a stat run is already in flight")
)

// Notifier receives run lifecycle messages (for the websocket surface).
type Notifier func(msgType string, payload interface{})

// Runner dispatches a named stat: it opens a session, executes the
// computation, and normalizes success or failure into a StatResult with
// the run's full network timeline attached. Failures inside a compute
// never escape to the caller as panics or unhandled errors.
type Runner struct {
	registry  *Registry
	tracker   *session.Tracker
	workspace *cache.Workspace
	log       zerolog.Logger
	notify    Notifier

	mu sync.Mutex
}

// NewRunner wires the runner to its registry, tracker and workspace.
func NewRunner(registry *Registry, tracker *session.Tracker, workspace *cache.Workspace, log zerolog.Logger) *Runner {
	return &Runner{
		registry:  registry,
		tracker:   tracker,
		workspace: workspace,
		log:       log.With().Str("component", "runner").Logger(),
	}
}

// SetNotifier installs an optional run lifecycle sink.
func (r *Runner) SetNotifier(fn Notifier) { r.notify = fn }

// Registry exposes the catalog for listing.
func (r *Runner) Registry() *Registry { return r.registry }

// Workspace exposes the cache for token selection.
func (r *Runner) Workspace() *cache.Workspace { return r.workspace }

// Tracker exposes the session tracker for the live-timeline endpoint.
func (r *Runner) Tracker() *session.Tracker { return r.tracker }

// Run executes the stat with the given id and returns its result. The
// result always carries either a value or an error string plus the
// network events recorded during the run.
func (r *Runner) Run(ctx context.Context, id string) models.StatResult {
	started := time.Now()

	def, ok := r.registry.Get(id)
	if !ok {
		return models.StatResult{
			StatID:     id,
			Error:      fmt.Sprintf("%v: %s", ErrUnknownStat, id),
			DurationMs: time.Since(started).Milliseconds(),
			Events:     []models.NetworkEvent{},
		}
	}

	if !r.mu.TryLock() {
		return models.StatResult{
			StatID:     id,
			Error:      ErrRunInFlight.Error(),
			DurationMs: time.Since(started).Milliseconds(),
			Events:     []models.NetworkEvent{},
		}
	}
	defer r.mu.Unlock()

	sessionID := r.tracker.Start(id)
	r.emit("run_started", V{"statId": id, "sessionId": sessionID})

	value, err := r.safeCompute(ctx, def)
	r.tracker.Stop()

	result := models.StatResult{
		StatID:     id,
		SessionID:  sessionID,
		DurationMs: time.Since(started).Milliseconds(),
		Events:     r.tracker.Events(),
	}
	if err != nil {
		result.Error = err.Error()
		r.log.Warn().Str("stat", id).Err(err).Msg("stat run failed")
	} else {
		result.Value = value
	}
	r.emit("run_finished", V{
		"statId":     id,
		"sessionId":  sessionID,
		"ok":         result.OK(),
		"durationMs": result.DurationMs,
	})
	return result
}

// safeCompute shields the runner from panics inside a computation.
func (r *Runner) safeCompute(ctx context.Context, def Definition) (value interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			value = nil
			err = fmt.Errorf("stat panic: %v", rec)
		}
	}()
	return def.Compute(ctx, r.workspace)
}

func (r *Runner) emit(msgType string, payload interface{}) {
	if r.notify != nil {
		r.notify(msgType, payload)
	}
}
