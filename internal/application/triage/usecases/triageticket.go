package usecases

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"triago/internal/application/triage"
	"triago/internal/domain/audit"
	"triago/internal/domain/kb"
	"triago/internal/domain/setting"
	"triago/internal/domain/suggestion"
	"triago/internal/domain/ticket"
	vo "triago/internal/domain/ticket/valueobjects"
	"triago/internal/shared/errors"
	"triago/internal/shared/logger"
)

type TriageTicketCommand struct {
	TicketID uint
	TraceID  string
}

type TriageTicketResult struct {
	Suggestion   *suggestion.AgentSuggestion
	SuggestionID uint
	AutoClosed   bool
	Confidence   float64
	Threshold    float64
}

type TriageTicketExecutor interface {
	Execute(ctx context.Context, cmd TriageTicketCommand) (*TriageTicketResult, error)
}

// TriageTicketUseCase drives one triage run: snapshot the knowledge base,
// call the classifier with bounded retries, persist the resulting
// agent suggestion, and decide the ticket's next status against the
// configured confidence threshold. Every step appends an audit entry under
// the command's trace identifier.
type TriageTicketUseCase struct {
	ticketRepo     ticket.Repository
	kbRepo         kb.Repository
	suggestionRepo suggestion.Repository
	settingRepo    setting.Repository
	auditRec       audit.Recorder
	classifier     triage.Classifier
	retryCount     int
	defaults       *setting.TriageSettings
	logger         logger.Interface
}

func NewTriageTicketUseCase(
	ticketRepo ticket.Repository,
	kbRepo kb.Repository,
	suggestionRepo suggestion.Repository,
	settingRepo setting.Repository,
	auditRec audit.Recorder,
	classifier triage.Classifier,
	retryCount int,
	defaults *setting.TriageSettings,
	logger logger.Interface,
) *TriageTicketUseCase {
	if retryCount < 0 {
		retryCount = 0
	}
	if defaults == nil {
		defaults = setting.NewDefaultTriageSettings(false)
	}
	return &TriageTicketUseCase{
		ticketRepo:     ticketRepo,
		kbRepo:         kbRepo,
		suggestionRepo: suggestionRepo,
		settingRepo:    settingRepo,
		auditRec:       auditRec,
		classifier:     classifier,
		retryCount:     retryCount,
		defaults:       defaults,
		logger:         logger,
	}
}

func (uc *TriageTicketUseCase) Execute(ctx context.Context, cmd TriageTicketCommand) (*TriageTicketResult, error) {
	uc.logger.Infow("executing triage", "ticket_id", cmd.TicketID, "trace_id", cmd.TraceID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.TraceID == "" {
		return nil, errors.NewValidationError("trace ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket for triage", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	articles, err := uc.kbRepo.ListPublished(ctx)
	if err != nil {
		uc.logger.Errorw("failed to snapshot knowledge base", "error", err)
		return nil, errors.NewInternalError("failed to snapshot knowledge base", err.Error())
	}
	kbItems := snapshotKB(articles)

	uc.record(ctx, t.ID(), cmd.TraceID, audit.ActorSystem, nil, audit.ActionTriageEnqueued, map[string]interface{}{
		"kbSnapshotSize": len(kbItems),
		"titleLength":    len(t.Title()),
	})

	req := &triage.Request{
		TraceID: cmd.TraceID,
		Ticket: triage.TicketInput{
			ID:          strconv.FormatUint(uint64(t.ID()), 10),
			Title:       t.Title(),
			Description: t.Description(),
		},
		KB: kbItems,
	}

	triageStart := time.Now()
	resp, attempts, callLatency, err := uc.callWithRetries(ctx, t.ID(), cmd.TraceID, req)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, t.ID(), cmd.TraceID, audit.ActorSystem, nil, audit.ActionAgentResponseReceived, map[string]interface{}{
		"latencyMs":     callLatency.Milliseconds(),
		"confidence":    resp.Confidence,
		"category":      resp.PredictedCategory,
		"citationCount": len(resp.Citations),
		"replyLength":   len(resp.DraftReply),
		"attempts":      attempts,
	})

	for _, step := range resp.StepLogs {
		uc.record(ctx, t.ID(), cmd.TraceID, audit.ActorSystem, nil, step.Action, step.Meta)
	}

	settings, err := uc.settingRepo.GetOrCreateDefault(ctx, uc.defaults)
	if err != nil {
		uc.logger.Errorw("failed to load triage settings", "error", err)
		return nil, errors.NewInternalError("failed to load triage settings", err.Error())
	}

	autoClose := settings.ShouldAutoClose(resp.Confidence)

	category := vo.Category(resp.PredictedCategory)
	if !category.IsValid() {
		category = vo.CategoryOther
	}

	originalConfidence := resp.Confidence
	if resp.OriginalConfidence != nil {
		originalConfidence = *resp.OriginalConfidence
	}

	sugg, err := suggestion.NewAgentSuggestion(
		t.ID(),
		category.String(),
		resp.Citations,
		resp.DraftReply,
		resp.Confidence,
		originalConfidence,
		autoClose,
		suggestion.ModelInfo{
			Provider:      resp.ModelInfo.Provider,
			Model:         resp.ModelInfo.Model,
			PromptVersion: resp.ModelInfo.PromptVersion,
			LatencyMs:     callLatency.Milliseconds(),
			Attempts:      attempts,
		},
	)
	if err != nil {
		uc.logger.Errorw("failed to build agent suggestion", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.suggestionRepo.Save(ctx, sugg); err != nil {
		uc.logger.Errorw("failed to persist agent suggestion", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	if err := t.ApplyTriage(category, sugg.ID(), autoClose); err != nil {
		uc.logger.Errorw("failed to apply triage outcome", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInvalidStateError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update triaged ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	decisionMeta := map[string]interface{}{
		"confidence": resp.Confidence,
		"threshold":  settings.ConfidenceThreshold(),
	}
	if autoClose {
		// The draft is stored but withheld; a human must still dispatch it.
		uc.record(ctx, t.ID(), cmd.TraceID, audit.ActorSystem, nil, audit.ActionAutoResolvedWithoutReply, decisionMeta)
	} else {
		uc.record(ctx, t.ID(), cmd.TraceID, audit.ActorSystem, nil, audit.ActionRequiresHumanReview, decisionMeta)
	}

	uc.record(ctx, t.ID(), cmd.TraceID, audit.ActorSystem, nil, audit.ActionTriageCompleted, map[string]interface{}{
		"status":         t.Status().String(),
		"category":       category.String(),
		"confidence":     resp.Confidence,
		"totalLatencyMs": time.Since(triageStart).Milliseconds(),
	})

	uc.logger.Infow("triage completed",
		"ticket_id", t.ID(),
		"status", t.Status().String(),
		"confidence", resp.Confidence,
		"auto_closed", autoClose)

	return &TriageTicketResult{
		Suggestion:   sugg,
		SuggestionID: sugg.ID(),
		AutoClosed:   autoClose,
		Confidence:   resp.Confidence,
		Threshold:    settings.ConfidenceThreshold(),
	}, nil
}

// callWithRetries performs up to retryCount+1 attempts against the
// classifier. Non-final failures append TRIAGE_RETRY; the exhausted final
// attempt appends TRIAGE_FAILED and surfaces an upstream error.
func (uc *TriageTicketUseCase) callWithRetries(
	ctx context.Context,
	ticketID uint,
	traceID string,
	req *triage.Request,
) (*triage.Response, int, time.Duration, error) {
	maxAttempts := uc.retryCount + 1
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := uc.classifier.Triage(ctx, req)
		if err == nil {
			return resp, attempt, time.Since(start), nil
		}

		lastErr = err
		elapsed := time.Since(start)

		if attempt < maxAttempts {
			uc.logger.Warnw("classifier attempt failed, retrying",
				"ticket_id", ticketID, "attempt", attempt, "error", err)
			uc.record(ctx, ticketID, traceID, audit.ActorSystem, nil, audit.ActionTriageRetry, map[string]interface{}{
				"attempt":   attempt,
				"elapsedMs": elapsed.Milliseconds(),
				"error":     err.Error(),
			})
			continue
		}

		uc.logger.Errorw("classifier attempts exhausted",
			"ticket_id", ticketID, "attempts", attempt, "error", err)
		uc.record(ctx, ticketID, traceID, audit.ActorSystem, nil, audit.ActionTriageFailed, map[string]interface{}{
			"attempts":  attempt,
			"elapsedMs": elapsed.Milliseconds(),
			"error":     err.Error(),
		})
	}

	return nil, maxAttempts, time.Since(start), errors.NewUpstreamError("classifier service unavailable", lastErr)
}

// record appends an audit entry best-effort. A failed append is an
// observability gap, not a user-facing failure.
func (uc *TriageTicketUseCase) record(
	ctx context.Context,
	ticketID uint,
	traceID string,
	actor audit.Actor,
	actorID *uint,
	action string,
	meta map[string]interface{},
) {
	entry, err := audit.NewEntry(ticketID, traceID, actor, actorID, action, meta)
	if err != nil {
		uc.logger.Errorw("failed to build audit entry", "action", action, "error", err)
		return
	}
	if err := uc.auditRec.Append(ctx, entry); err != nil {
		uc.logger.Errorw("failed to append audit entry", "action", action, "error", err)
	}
}

func snapshotKB(articles []*kb.Article) []triage.KBItem {
	items := make([]triage.KBItem, 0, len(articles))
	for _, a := range articles {
		id := a.Slug()
		if id == "" {
			id = strconv.FormatUint(uint64(a.ID()), 10)
		}
		items = append(items, triage.KBItem{
			ID:    id,
			Title: a.Title(),
			Body:  a.Body(),
			Tags:  a.Tags(),
		})
	}
	return items
}
