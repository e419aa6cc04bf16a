package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// service is the default Service: events become structured log records on
// the process logger. Disable turns EmitEvent into a no-op while event
// construction keeps working, so call sites stay unconditional.
type service struct {
	disabled  atomic.Bool
	machineID string
}

// NewService builds the default analytics service, disabled when the
// configuration opts out.
func NewService(enabled bool) Service {
	s := &service{machineID: machineID()}
	if !enabled {
		s.Disable()
	}
	return s
}

func (s *service) Disable() { s.disabled.Store(true) }

func (s *service) Enable() { s.disabled.Store(false) }

func (s *service) EmitEvent(event TrackEvent) {
	if s.disabled.Load() {
		return
	}
	slog.Info("analytics event",
		"event", event.Event,
		"event_id", event.EventID,
		"machine_id", event.MachineID,
		"timestamp", event.Timestamp.Format(time.RFC3339),
		"properties", event.Properties)
}

func (s *service) NewStartupEvent(info StartupEventInfo) TrackEvent {
	return s.newEvent(eventStartup, map[string]any{
		"version":       info.Version,
		"endpoint":      info.Endpoint,
		"default_graph": info.DefaultGraph,
		"tools_enabled": info.ToolsEnabled,
	})
}

func (s *service) NewToolsEvent(toolUsed string) TrackEvent {
	return s.newEvent(eventToolUsed, map[string]any{"tool": toolUsed})
}

func (s *service) newEvent(name string, props map[string]any) TrackEvent {
	return TrackEvent{
		Event:      name,
		EventID:    uuid.NewString(),
		MachineID:  s.machineID,
		Timestamp:  time.Now().UTC(),
		Properties: props,
	}
}

// machineID derives a stable, non-reversible host identifier so events from
// one installation correlate without exposing the hostname.
func machineID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "unknown"
	}
	sum := sha256.Sum256([]byte(host))
	return hex.EncodeToString(sum[:8])
}
