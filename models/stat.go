package models

// StatInfo describes one stat in the catalog for discovery by the UI.
type StatInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// StatResult is what the runner hands back for every run: either a value
// or an error string, always with the run's full network timeline.
type StatResult struct {
	StatID     string         `json:"statId"`
	SessionID  string         `json:"sessionId"`
	Value      interface{}    `json:"value,omitempty"`
	Error      string         `json:"error,omitempty"`
	DurationMs int64          `json:"durationMs"`
	Events     []NetworkEvent `json:"networkEvents"`
}

// OK reports whether the run produced a value.
func (r StatResult) OK() bool {
	return r.Error == ""
}
