package usecases

import (
	"context"
	"fmt"

	"triago/internal/domain/audit"
	"triago/internal/domain/ticket"
	"triago/internal/shared/errors"
	"triago/internal/shared/id"
	"triago/internal/shared/logger"
)

type CloseTicketCommand struct {
	TicketID uint
	AgentID  uint
	Reason   string
}

type CloseTicketResult struct {
	Ticket  *ticket.Ticket
	TraceID string
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error)
}

// CloseTicketUseCase closes a ticket from any non-closed status,
// independent of the review action.
type CloseTicketUseCase struct {
	ticketRepo ticket.Repository
	auditRec   audit.Recorder
	logger     logger.Interface
}

func NewCloseTicketUseCase(ticketRepo ticket.Repository, auditRec audit.Recorder, logger logger.Interface) *CloseTicketUseCase {
	return &CloseTicketUseCase{ticketRepo: ticketRepo, auditRec: auditRec, logger: logger}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	uc.logger.Infow("executing close ticket", "ticket_id", cmd.TicketID, "agent_id", cmd.AgentID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.AgentID == 0 {
		return nil, errors.NewValidationError("agent ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	oldStatus := t.Status()
	if err := t.Close(); err != nil {
		return nil, errors.NewInvalidStateError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update closed ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	traceID := id.NewTraceID()
	agentID := cmd.AgentID
	entry, err := audit.NewEntry(t.ID(), traceID, audit.ActorAgent, &agentID, audit.ActionTicketClosed, map[string]interface{}{
		"oldStatus": oldStatus.String(),
		"newStatus": t.Status().String(),
		"reason":    cmd.Reason,
	})
	if err == nil {
		if appendErr := uc.auditRec.Append(ctx, entry); appendErr != nil {
			uc.logger.Errorw("failed to append close audit entry", "ticket_id", t.ID(), "error", appendErr)
		}
	}

	return &CloseTicketResult{Ticket: t, TraceID: traceID}, nil
}
