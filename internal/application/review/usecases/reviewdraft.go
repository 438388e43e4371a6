package usecases

import (
	"context"
	"fmt"
	"strings"

	appnotification "triago/internal/application/notification"
	"triago/internal/domain/audit"
	"triago/internal/domain/reply"
	"triago/internal/domain/review"
	"triago/internal/domain/suggestion"
	"triago/internal/domain/ticket"
	vo "triago/internal/domain/ticket/valueobjects"
	"triago/internal/shared/errors"
	"triago/internal/shared/id"
	"triago/internal/shared/logger"
)

type ReviewDraftCommand struct {
	TicketID        uint
	AgentID         uint
	AgentName       string
	Action          review.Action
	EditedReply     string
	Feedback        string
	SendImmediately bool
	CloseTicket     bool
}

type ReviewDraftResult struct {
	Ticket       *ticket.Ticket
	ReviewResult suggestion.ReviewResult
	FinalReply   string
	TraceID      string
	ReplySent    bool
}

type ReviewDraftExecutor interface {
	Execute(ctx context.Context, cmd ReviewDraftCommand) (*ReviewDraftResult, error)
}

// ReviewDraftUseCase applies an agent's accept, edit, or reject decision to
// a pending agent suggestion. The suggestion row is claimed with an atomic
// conditional update so two agents racing on the same ticket resolve to one
// winner and one conflict.
type ReviewDraftUseCase struct {
	ticketRepo     ticket.Repository
	suggestionRepo suggestion.Repository
	reviewRepo     review.Repository
	replyRepo      reply.Repository
	auditRec       audit.Recorder
	notifier       appnotification.Notifier
	logger         logger.Interface
}

func NewReviewDraftUseCase(
	ticketRepo ticket.Repository,
	suggestionRepo suggestion.Repository,
	reviewRepo review.Repository,
	replyRepo reply.Repository,
	auditRec audit.Recorder,
	notifier appnotification.Notifier,
	logger logger.Interface,
) *ReviewDraftUseCase {
	return &ReviewDraftUseCase{
		ticketRepo:     ticketRepo,
		suggestionRepo: suggestionRepo,
		reviewRepo:     reviewRepo,
		replyRepo:      replyRepo,
		auditRec:       auditRec,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *ReviewDraftUseCase) Execute(ctx context.Context, cmd ReviewDraftCommand) (*ReviewDraftResult, error) {
	uc.logger.Infow("executing review draft",
		"ticket_id", cmd.TicketID, "agent_id", cmd.AgentID, "action", cmd.Action.String())

	if err := uc.validate(cmd); err != nil {
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}
	if !t.Status().IsReviewable() {
		return nil, errors.NewInvalidStateError(
			fmt.Sprintf("ticket in status %s has no reviewable draft", t.Status()))
	}
	if t.SuggestionID() == nil {
		return nil, errors.NewInvalidStateError("ticket has no agent suggestion to review")
	}

	sugg, err := uc.suggestionRepo.GetByID(ctx, *t.SuggestionID())
	if err != nil {
		return nil, errors.NewNotFoundError("agent suggestion not found")
	}

	result := suggestion.ReviewAccepted
	if cmd.Action == review.ActionReject {
		result = suggestion.ReviewRejected
	}

	// Domain-level check first: a follow-up by the same agent must keep the
	// same result, anything else is an invalid state rather than a race.
	if err := sugg.MarkReviewed(result, cmd.AgentID); err != nil {
		return nil, errors.NewInvalidStateError(err.Error())
	}

	// Claim the row. Loses the race only to a different reviewer.
	claimed, err := uc.suggestionRepo.MarkReviewed(ctx, sugg.ID(), result, cmd.AgentID)
	if err != nil {
		uc.logger.Errorw("failed to mark suggestion reviewed", "suggestion_id", sugg.ID(), "error", err)
		return nil, err
	}
	if !claimed {
		return nil, errors.NewConflictError("draft already reviewed by another agent")
	}

	traceID := id.NewTraceID()
	originalReply := sugg.DraftReply()
	finalReply := originalReply
	if cmd.Action == review.ActionEdit {
		finalReply = cmd.EditedReply
		if err := sugg.ReplaceDraft(finalReply); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := uc.suggestionRepo.Update(ctx, sugg); err != nil {
			uc.logger.Errorw("failed to persist edited draft", "suggestion_id", sugg.ID(), "error", err)
			return nil, err
		}
	}

	if err := uc.upsertRecord(ctx, cmd, finalReply, sugg.Confidence(), traceID); err != nil {
		return nil, err
	}

	uc.record(ctx, t.ID(), traceID, cmd.AgentID, actionAuditTag(cmd.Action), map[string]interface{}{
		"agentName":       cmd.AgentName,
		"confidence":      sugg.Confidence(),
		"originalReply":   originalReply,
		"finalReply":      finalReply,
		"sendImmediately": cmd.SendImmediately,
		"closeTicket":     cmd.CloseTicket,
		"feedback":        cmd.Feedback,
	})

	replySent := false
	switch cmd.Action {
	case review.ActionAccept, review.ActionEdit:
		replySent, err = uc.applyAccept(ctx, cmd, t, sugg, finalReply, traceID)
		if err != nil {
			return nil, err
		}
	case review.ActionReject:
		// No reply, no assignment. The ticket stays reviewable for another
		// triage run or a manual reassignment.
	}

	uc.logger.Infow("review draft completed",
		"ticket_id", t.ID(), "action", cmd.Action.String(), "status", t.Status().String())

	return &ReviewDraftResult{
		Ticket:       t,
		ReviewResult: result,
		FinalReply:   finalReply,
		TraceID:      traceID,
		ReplySent:    replySent,
	}, nil
}

func (uc *ReviewDraftUseCase) validate(cmd ReviewDraftCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.AgentID == 0 {
		return errors.NewValidationError("agent ID is required")
	}
	if !cmd.Action.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid review action: %s", cmd.Action))
	}
	if cmd.Action == review.ActionEdit && strings.TrimSpace(cmd.EditedReply) == "" {
		return errors.NewValidationError("edited reply is required for edit action")
	}
	return nil
}

func (uc *ReviewDraftUseCase) upsertRecord(
	ctx context.Context,
	cmd ReviewDraftCommand,
	finalReply string,
	confidence float64,
	traceID string,
) error {
	existing, err := uc.reviewRepo.GetByTicketAndAgent(ctx, cmd.TicketID, cmd.AgentID)
	if err == nil && existing != nil {
		if err := existing.ApplyFollowUp(cmd.Action, finalReply, cmd.SendImmediately, cmd.CloseTicket, traceID, cmd.Feedback); err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.reviewRepo.Update(ctx, existing); err != nil {
			uc.logger.Errorw("failed to update review record", "ticket_id", cmd.TicketID, "error", err)
			return err
		}
		return nil
	}

	rec, err := review.NewRecord(
		cmd.TicketID, cmd.AgentID, cmd.AgentName, cmd.Action,
		finalReply, confidence, cmd.SendImmediately, cmd.CloseTicket,
		traceID, cmd.Feedback,
	)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := uc.reviewRepo.Save(ctx, rec); err != nil {
		uc.logger.Errorw("failed to save review record", "ticket_id", cmd.TicketID, "error", err)
		return err
	}
	return nil
}

// applyAccept runs the accepted-path side effects: assignment, the
// customer-visible reply, and the optional send/close transitions.
func (uc *ReviewDraftUseCase) applyAccept(
	ctx context.Context,
	cmd ReviewDraftCommand,
	t *ticket.Ticket,
	sugg *suggestion.AgentSuggestion,
	finalReply string,
	traceID string,
) (bool, error) {
	if err := t.AssignTo(cmd.AgentID); err != nil {
		return false, errors.NewInvalidStateError(err.Error())
	}

	r, err := reply.NewReply(t.ID(), cmd.AgentID, reply.AuthorAgent, finalReply, sugg.Citations())
	if err != nil {
		return false, errors.NewValidationError(err.Error())
	}
	if err := uc.replyRepo.Save(ctx, r); err != nil {
		uc.logger.Errorw("failed to save reply", "ticket_id", t.ID(), "error", err)
		return false, err
	}

	replySent := false
	if cmd.SendImmediately {
		replySent = true
		if cmd.CloseTicket {
			if err := t.ChangeStatus(vo.StatusResolved); err != nil {
				return false, errors.NewInvalidStateError(err.Error())
			}
			uc.record(ctx, t.ID(), traceID, cmd.AgentID, audit.ActionTicketResolvedWithReply, map[string]interface{}{
				"replyLength": len(finalReply),
				"citations":   sugg.Citations(),
			})
		} else if t.Status().CanTransitionTo(vo.StatusOpen) {
			// Sent without closing: back to the open queue. An already
			// resolved ticket keeps its status.
			if err := t.ChangeStatus(vo.StatusOpen); err != nil {
				return false, errors.NewInvalidStateError(err.Error())
			}
		}
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket after review", "ticket_id", t.ID(), "error", err)
		return false, err
	}

	// The reply row is customer-visible as soon as it exists, so the
	// creator is notified even when the agent did not send immediately.
	if replySent && cmd.CloseTicket {
		uc.notifier.TicketResolved(ctx, t.CreatorID(), t.ID(), t.Number())
	} else {
		uc.notifier.TicketReplied(ctx, t.CreatorID(), t.ID(), t.Number())
	}

	return replySent, nil
}

func (uc *ReviewDraftUseCase) record(
	ctx context.Context,
	ticketID uint,
	traceID string,
	agentID uint,
	action string,
	meta map[string]interface{},
) {
	entry, err := audit.NewEntry(ticketID, traceID, audit.ActorAgent, &agentID, action, meta)
	if err != nil {
		uc.logger.Errorw("failed to build audit entry", "action", action, "error", err)
		return
	}
	if err := uc.auditRec.Append(ctx, entry); err != nil {
		uc.logger.Errorw("failed to append audit entry", "action", action, "error", err)
	}
}

func actionAuditTag(a review.Action) string {
	switch a {
	case review.ActionEdit:
		return audit.ActionAgentDraftEditedAccepted
	case review.ActionReject:
		return audit.ActionAgentDraftRejected
	default:
		return audit.ActionAgentDraftAccepted
	}
}
