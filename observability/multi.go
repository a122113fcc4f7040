package observability

import (
	"context"
	"maps"
	"slices"
)

// MultiObserver delivers each event to several observers in order.
type MultiObserver struct {
	targets []Observer
}

// NewMultiObserver combines observers, skipping nil entries.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	targets := slices.DeleteFunc(slices.Clone(observers), func(o Observer) bool {
		return o == nil
	})
	return &MultiObserver{targets: targets}
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, target := range m.targets {
		target.OnEvent(ctx, event)
	}
}

// DataObserver stamps a fixed set of attributes onto every event before
// forwarding it. Event data wins over the stamped attributes on key collision.
type DataObserver struct {
	next Observer
	data map[string]any
}

// WithData wraps next so every forwarded event carries data.
func WithData(next Observer, data map[string]any) *DataObserver {
	return &DataObserver{next: next, data: maps.Clone(data)}
}

func (d *DataObserver) OnEvent(ctx context.Context, event Event) {
	merged := make(map[string]any, len(d.data)+len(event.Data))
	maps.Copy(merged, d.data)
	maps.Copy(merged, event.Data)
	event.Data = merged
	d.next.OnEvent(ctx, event)
}
