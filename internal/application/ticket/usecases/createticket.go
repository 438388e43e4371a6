package usecases

import (
	"context"
	"strings"

	triageusecases "triago/internal/application/triage/usecases"
	"triago/internal/domain/suggestion"
	"triago/internal/domain/ticket"
	vo "triago/internal/domain/ticket/valueobjects"
	"triago/internal/shared/errors"
	"triago/internal/shared/id"
	"triago/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	Category    string
	CreatorID   uint
	Attachments []string
}

type CreateTicketResult struct {
	Ticket  *ticket.Ticket
	TraceID string

	// Triage outcome. The freshly persisted suggestion is embedded so the
	// creation response can show the draft without a second fetch.
	// TriageFailed is set when the classifier was unavailable; the ticket
	// still exists and stays open.
	Suggestion   *suggestion.AgentSuggestion
	SuggestionID uint
	AutoClosed   bool
	Confidence   float64
	TriageFailed bool
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

// CreateTicketUseCase persists a new ticket and runs triage synchronously
// within the same request. A classifier outage degrades to a plain open
// ticket rather than failing the creation; the audit trail records the
// failed attempts.
type CreateTicketUseCase struct {
	ticketRepo ticket.Repository
	triageUC   triageusecases.TriageTicketExecutor
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	triageUC triageusecases.TriageTicketExecutor,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{ticketRepo: ticketRepo, triageUC: triageUC, logger: logger}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket", "creator_id", cmd.CreatorID, "title", cmd.Title)

	if strings.TrimSpace(cmd.Title) == "" {
		return nil, errors.NewValidationError("title is required")
	}
	if cmd.CreatorID == 0 {
		return nil, errors.NewValidationError("creator ID is required")
	}

	category := vo.CategoryOther
	if cmd.Category != "" {
		category = vo.Category(cmd.Category)
		if !category.IsValid() {
			return nil, errors.NewValidationError("invalid category: " + cmd.Category)
		}
	}

	t, err := ticket.NewTicket(cmd.Title, cmd.Description, category, cmd.CreatorID, cmd.Attachments)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := t.SetNumber(id.NewTicketNumber()); err != nil {
		return nil, errors.NewInternalError("failed to assign ticket number", err.Error())
	}

	if err := uc.ticketRepo.Save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	traceID := id.NewTraceID()
	result := &CreateTicketResult{Ticket: t, TraceID: traceID}

	triageResult, err := uc.triageUC.Execute(ctx, triageusecases.TriageTicketCommand{
		TicketID: t.ID(),
		TraceID:  traceID,
	})
	if err != nil {
		uc.logger.Warnw("triage failed, ticket stays open",
			"ticket_id", t.ID(), "trace_id", traceID, "error", err)
		result.TriageFailed = true
		return result, nil
	}

	// Reload so the response carries the post-triage status and category.
	refreshed, err := uc.ticketRepo.GetByID(ctx, t.ID())
	if err == nil {
		result.Ticket = refreshed
	}
	result.Suggestion = triageResult.Suggestion
	result.SuggestionID = triageResult.SuggestionID
	result.AutoClosed = triageResult.AutoClosed
	result.Confidence = triageResult.Confidence

	return result, nil
}
