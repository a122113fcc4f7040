package persist

import "github.com/tailored-agentic-units/cdinventory/observability"

// Gateway event types.
const (
	EventCreate observability.EventType = "persist.create"
	EventLoad   observability.EventType = "persist.load"
	EventSave   observability.EventType = "persist.save"
)
