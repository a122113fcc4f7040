// Package report turns errors raised by the inventory components into
// messages for the user. It is the only place that decides how a failure is
// presented.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/tailored-agentic-units/cdinventory/observability"
)

// EventError is emitted for every reported error.
const EventError observability.EventType = "report.error"

// Reporter presents a failed operation to the user.
type Reporter interface {
	Report(ctx context.Context, op string, err error)
}

// WriterReporter writes a short message and the error details to an
// io.Writer and emits an EventError.
type WriterReporter struct {
	out      io.Writer
	observer observability.Observer
}

// NewWriterReporter creates a WriterReporter. A nil observer discards events.
func NewWriterReporter(out io.Writer, observer observability.Observer) *WriterReporter {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	return &WriterReporter{out: out, observer: observer}
}

// Report ignores a nil err.
func (r *WriterReporter) Report(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	kind := Classify(err)

	fmt.Fprintf(r.out, "\n---- %s ----\n", kind.Message())
	fmt.Fprintf(r.out, "Error details (%s): %v\n\n", op, err)

	level := observability.LevelError
	if kind == KindTypeConversion || kind == KindNotFound || kind == KindInputTooLong {
		level = observability.LevelWarning
	}
	observability.Emit(ctx, r.observer, EventError, level, "report.Report", map[string]any{
		"op":    op,
		"kind":  kind.String(),
		"error": err.Error(),
	})
}
