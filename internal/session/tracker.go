// Package session correlates instrumented-transport events to the
// currently active stat run. Calls started outside a session, or left
// over from a replaced session, are dropped rather than buffered.
package session

import (
	"sync"

	"github.com/google/uuid"

	"tokenscope/models"
)

// ListenerID is the id the tracker registers under on the transport client.
const ListenerID = "session-tracker"

// Tracker owns the network-event timeline of the active session. At most
// one session is active at a time; starting a new one replaces the old
// and stops attributing its outstanding calls.
type Tracker struct {
	mu        sync.Mutex
	sessionID string
	statID    string
	order     []string
	events    map[string]*models.NetworkEvent
	publish   func(sessionID string, ev models.NetworkEvent)
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{events: make(map[string]*models.NetworkEvent)}
}

// SetPublisher installs an optional live sink for recorded events
// (e.g. the websocket hub). Must be set before the first session.
func (t *Tracker) SetPublisher(fn func(sessionID string, ev models.NetworkEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.publish = fn
}

// Start opens a session for the given stat and returns its id. Any
// previous session is implicitly ended; its pending calls will no longer
// be attributed.
func (t *Tracker) Start(statID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessionID = uuid.NewString()
	t.statID = statID
	t.order = nil
	t.events = make(map[string]*models.NetworkEvent)
	return t.sessionID
}

// Stop ends the active session. The recorded timeline stays readable
// until the next Start.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessionID = ""
	t.statID = ""
}

// Active reports whether a session is open.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID != ""
}

// Handle is the transport listener. Pending events are recorded, settled
// events update the matching pending record by call id. Unknown ids are
// dropped: they belong to no session or to a replaced one.
func (t *Tracker) Handle(ev models.NetworkEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ev.Status == models.CallPending {
		if t.sessionID == "" {
			return
		}
		cp := ev
		t.events[ev.ID] = &cp
		t.order = append(t.order, ev.ID)
	} else {
		rec, ok := t.events[ev.ID]
		if !ok || rec.Finished() {
			return
		}
		// pending -> success|error, never backward
		rec.Status = ev.Status
		rec.EndedAt = ev.EndedAt
		rec.DurationMs = ev.DurationMs
		rec.StatusCode = ev.StatusCode
		rec.ResponseSnippet = ev.ResponseSnippet
		rec.Error = ev.Error
	}
	if t.publish != nil && t.sessionID != "" {
		t.publish(t.sessionID, ev)
	}
}

// Events returns a copy of the recorded timeline in call-start order.
func (t *Tracker) Events() []models.NetworkEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.NetworkEvent, 0, len(t.order))
	for _, id := range t.order {
		if rec, ok := t.events[id]; ok {
			out = append(out, *rec)
		}
	}
	return out
}

// StatID returns the stat the active session belongs to.
func (t *Tracker) StatID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statID
}

// SessionID returns the id of the active session, or "" when idle.
func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}
