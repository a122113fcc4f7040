package inventory

import "github.com/tailored-agentic-units/cdinventory/observability"

// Record store event types.
const (
	EventRecordAdd       observability.EventType = "inventory.record.add"
	EventRecordDuplicate observability.EventType = "inventory.record.duplicate"
	EventRecordDelete    observability.EventType = "inventory.record.delete"
	EventRecordMissing   observability.EventType = "inventory.record.missing"
)
