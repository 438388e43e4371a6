package review

import "context"

type Repository interface {
	Save(ctx context.Context, r *Record) error
	Update(ctx context.Context, r *Record) error
	GetByTicketAndAgent(ctx context.Context, ticketID, agentID uint) (*Record, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Record, error)

	// ListPending returns records whose facets are still pending, newest
	// first, for the agent dashboard.
	ListPending(ctx context.Context, limit int) ([]*Record, error)
}
