package analytics

import "time"

// Event names attached to TrackEvent.Event.
const (
	eventStartup  = "server_startup"
	eventToolUsed = "tool_used"
)

// TrackEvent is a single usage event.
type TrackEvent struct {
	Event      string         `json:"event"`
	EventID    string         `json:"event_id"`
	MachineID  string         `json:"machine_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties,omitempty"`
}

// StartupEventInfo describes the server setup reported once at boot.
type StartupEventInfo struct {
	Version      string
	Endpoint     string
	DefaultGraph string
	ToolsEnabled int
}
