package observability

import "context"

// NoOpObserver drops every event. Components fall back to it when built
// without an observer.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(context.Context, Event) {}
