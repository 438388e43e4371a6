package usecases

import (
	"context"
	"fmt"

	"triago/internal/domain/reply"
	"triago/internal/domain/suggestion"
	"triago/internal/domain/ticket"
	"triago/internal/shared/errors"
	"triago/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	UserID   uint
	Role     string
}

type GetTicketResult struct {
	Ticket     *ticket.Ticket
	Suggestion *suggestion.AgentSuggestion
	Replies    []*reply.Reply
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*GetTicketResult, error)
}

// GetTicketUseCase loads a ticket with its current suggestion and reply
// thread, enforcing per-role visibility.
type GetTicketUseCase struct {
	ticketRepo     ticket.Repository
	suggestionRepo suggestion.Repository
	replyRepo      reply.Repository
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.Repository,
	suggestionRepo suggestion.Repository,
	replyRepo reply.Repository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		suggestionRepo: suggestionRepo,
		replyRepo:      replyRepo,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*GetTicketResult, error) {
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

	result := &GetTicketResult{Ticket: t}

	if t.SuggestionID() != nil {
		sugg, err := uc.suggestionRepo.GetByID(ctx, *t.SuggestionID())
		if err != nil {
			uc.logger.Warnw("linked suggestion missing", "ticket_id", t.ID(), "suggestion_id", *t.SuggestionID())
		} else {
			result.Suggestion = sugg
		}
	}

	replies, err := uc.replyRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list replies", "ticket_id", t.ID(), "error", err)
		return nil, err
	}
	result.Replies = replies

	return result, nil
}
