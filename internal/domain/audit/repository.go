package audit

import "context"

// Recorder is the write side of the audit trail. Appends are best-effort
// from the orchestration's point of view: a failed append is logged as a
// secondary error and never rolls back the primary state change.
type Recorder interface {
	Append(ctx context.Context, e *Entry) error
}

type Repository interface {
	Recorder
	ListByTicket(ctx context.Context, ticketID uint) ([]*Entry, error)
	ListByTrace(ctx context.Context, traceID string) ([]*Entry, error)
}
