package usecases

import (
	"context"
	"fmt"

	appnotification "triago/internal/application/notification"
	"triago/internal/domain/audit"
	"triago/internal/domain/ticket"
	"triago/internal/shared/errors"
	"triago/internal/shared/id"
	"triago/internal/shared/logger"
)

type ReopenTicketCommand struct {
	TicketID uint
	ActorID  uint
	Actor    audit.Actor
	Reason   string
}

type ReopenTicketResult struct {
	Ticket  *ticket.Ticket
	TraceID string
}

type ReopenTicketExecutor interface {
	Execute(ctx context.Context, cmd ReopenTicketCommand) (*ReopenTicketResult, error)
}

// ReopenTicketUseCase returns a closed ticket to the human review queue.
// Reopening never auto-assigns.
type ReopenTicketUseCase struct {
	ticketRepo ticket.Repository
	auditRec   audit.Recorder
	notifier   appnotification.Notifier
	logger     logger.Interface
}

func NewReopenTicketUseCase(
	ticketRepo ticket.Repository,
	auditRec audit.Recorder,
	notifier appnotification.Notifier,
	logger logger.Interface,
) *ReopenTicketUseCase {
	return &ReopenTicketUseCase{ticketRepo: ticketRepo, auditRec: auditRec, notifier: notifier, logger: logger}
}

func (uc *ReopenTicketUseCase) Execute(ctx context.Context, cmd ReopenTicketCommand) (*ReopenTicketResult, error) {
	uc.logger.Infow("executing reopen ticket", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	actor := cmd.Actor
	if actor == "" {
		actor = audit.ActorAgent
	}
	if !actor.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid actor: %s", actor))
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	if actor == audit.ActorUser && t.CreatorID() != cmd.ActorID {
		return nil, errors.NewForbiddenError("only the ticket creator can reopen it")
	}

	oldStatus := t.Status()
	if err := t.Reopen(); err != nil {
		return nil, errors.NewInvalidStateError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update reopened ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	traceID := id.NewTraceID()
	actorID := cmd.ActorID
	entry, err := audit.NewEntry(t.ID(), traceID, actor, &actorID, audit.ActionTicketReopened, map[string]interface{}{
		"oldStatus": oldStatus.String(),
		"newStatus": t.Status().String(),
		"reason":    cmd.Reason,
	})
	if err == nil {
		if appendErr := uc.auditRec.Append(ctx, entry); appendErr != nil {
			uc.logger.Errorw("failed to append reopen audit entry", "ticket_id", t.ID(), "error", appendErr)
		}
	}

	if actor != audit.ActorUser {
		uc.notifier.TicketReopened(ctx, t.CreatorID(), t.ID(), t.Number())
	}

	return &ReopenTicketResult{Ticket: t, TraceID: traceID}, nil
}
