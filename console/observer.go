package console

import "github.com/tailored-agentic-units/cdinventory/observability"

// Console event types.
const (
	EventStart observability.EventType = "console.start"
	EventExit  observability.EventType = "console.exit"
)
