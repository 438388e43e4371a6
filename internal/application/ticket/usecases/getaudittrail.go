package usecases

import (
	"context"
	"fmt"

	"triago/internal/domain/audit"
	"triago/internal/domain/ticket"
	"triago/internal/shared/errors"
	"triago/internal/shared/logger"
)

type GetAuditTrailQuery struct {
	TicketID uint
	UserID   uint
	Role     string
}

// TraceGroup is one logical operation's worth of audit entries, in the
// order they were written.
type TraceGroup struct {
	TraceID string
	Entries []*audit.Entry
}

type GetAuditTrailResult struct {
	Entries []*audit.Entry
	Traces  []TraceGroup
}

type GetAuditTrailExecutor interface {
	Execute(ctx context.Context, query GetAuditTrailQuery) (*GetAuditTrailResult, error)
}

// GetAuditTrailUseCase returns a ticket's audit log, both flat and grouped
// by trace identifier for the timeline view.
type GetAuditTrailUseCase struct {
	ticketRepo ticket.Repository
	auditRepo  audit.Repository
	logger     logger.Interface
}

func NewGetAuditTrailUseCase(ticketRepo ticket.Repository, auditRepo audit.Repository, logger logger.Interface) *GetAuditTrailUseCase {
	return &GetAuditTrailUseCase{ticketRepo: ticketRepo, auditRepo: auditRepo, logger: logger}
}

func (uc *GetAuditTrailUseCase) Execute(ctx context.Context, query GetAuditTrailQuery) (*GetAuditTrailResult, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
	}
	if !t.CanBeViewedBy(query.UserID, query.Role) {
		return nil, errors.NewForbiddenError("no access to this ticket")
	}

	entries, err := uc.auditRepo.ListByTicket(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to list audit entries", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	return &GetAuditTrailResult{
		Entries: entries,
		Traces:  groupByTrace(entries),
	}, nil
}

// groupByTrace buckets entries by trace identifier, ordering groups by the
// first time each trace appears.
func groupByTrace(entries []*audit.Entry) []TraceGroup {
	index := make(map[string]int)
	groups := make([]TraceGroup, 0)
	for _, e := range entries {
		i, ok := index[e.TraceID()]
		if !ok {
			i = len(groups)
			index[e.TraceID()] = i
			groups = append(groups, TraceGroup{TraceID: e.TraceID()})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
