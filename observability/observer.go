// Package observability provides event-based observability for the inventory
// components. Each component reports what it did as an Event; observers decide
// whether that becomes a log line, a test capture, or nothing at all.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level represents event severity. Values follow the OTel SeverityNumber
// ranges so they translate directly to slog levels.
type Level int

const (
	LevelVerbose Level = 5  // maps to slog.LevelDebug
	LevelInfo    Level = 9  // maps to slog.LevelInfo
	LevelWarning Level = 13 // maps to slog.LevelWarn
	LevelError   Level = 17 // maps to slog.LevelError
)

// String returns the severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel maps this level to the corresponding slog.Level.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType identifies the kind of event. Each package defines its own
// constants using this type (e.g., "inventory.record.add", "persist.save").
type EventType string

// Event is emitted by a component when something observable happens.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events for logging or inspection.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// Emit delivers an event built from the arguments to obs, stamping the
// current time. A nil observer is ignored.
func Emit(ctx context.Context, obs Observer, typ EventType, level Level, source string, data map[string]any) {
	if obs == nil {
		return
	}
	obs.OnEvent(ctx, Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	})
}
