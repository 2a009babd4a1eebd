package models

import "time"

// CallStatus is the lifecycle state of one outbound call.
type CallStatus string

const (
	CallPending CallStatus = "pending"
	CallSuccess CallStatus = "success"
	CallError   CallStatus = "error"
)

// NetworkEvent represents one outbound HTTP call observed during a stat run.
// It is created when the call starts and updated exactly once when the call
// finishes; after that it is read-only.
type NetworkEvent struct {
	ID              string     `json:"id"`
	Method          string     `json:"method"`
	URL             string     `json:"url"`
	Status          CallStatus `json:"status"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	DurationMs      int64      `json:"durationMs,omitempty"`
	StatusCode      int        `json:"statusCode,omitempty"`
	RequestSnippet  string     `json:"requestSnippet,omitempty"`
	ResponseSnippet string     `json:"responseSnippet,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// Finished reports whether the call has settled.
func (e *NetworkEvent) Finished() bool {
	return e.Status != CallPending
}
