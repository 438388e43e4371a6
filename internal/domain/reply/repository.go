package reply

import "context"

type Repository interface {
	Save(ctx context.Context, r *Reply) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Reply, error)
}
