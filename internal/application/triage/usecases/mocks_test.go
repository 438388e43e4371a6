package usecases

import (
	"context"
	"io"
	"log/slog"

	"triago/internal/application/triage"
	"triago/internal/domain/audit"
	"triago/internal/domain/kb"
	"triago/internal/domain/setting"
	"triago/internal/domain/suggestion"
	"triago/internal/domain/ticket"
	"triago/internal/shared/logger"
)

type mockTicketRepo struct {
	SaveFunc        func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc      func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc     func(ctx context.Context, id uint) (*ticket.Ticket, error)
	GetByNumberFunc func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc        func(ctx context.Context, f ticket.Filter) ([]*ticket.Ticket, int64, error)
}

func (m *mockTicketRepo) Save(ctx context.Context, t *ticket.Ticket) error {
	return m.SaveFunc(ctx, t)
}

func (m *mockTicketRepo) Update(ctx context.Context, t *ticket.Ticket) error {
	return m.UpdateFunc(ctx, t)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockTicketRepo) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	return m.GetByNumberFunc(ctx, number)
}

func (m *mockTicketRepo) List(ctx context.Context, f ticket.Filter) ([]*ticket.Ticket, int64, error) {
	return m.ListFunc(ctx, f)
}

type mockKBRepo struct {
	ListPublishedFunc func(ctx context.Context) ([]*kb.Article, error)
}

func (m *mockKBRepo) ListPublished(ctx context.Context) ([]*kb.Article, error) {
	return m.ListPublishedFunc(ctx)
}

type mockSuggestionRepo struct {
	SaveFunc         func(ctx context.Context, s *suggestion.AgentSuggestion) error
	UpdateFunc       func(ctx context.Context, s *suggestion.AgentSuggestion) error
	GetByIDFunc      func(ctx context.Context, id uint) (*suggestion.AgentSuggestion, error)
	GetByTicketFunc  func(ctx context.Context, ticketID uint) (*suggestion.AgentSuggestion, error)
	MarkReviewedFunc func(ctx context.Context, id uint, result suggestion.ReviewResult, reviewerID uint) (bool, error)
}

func (m *mockSuggestionRepo) Save(ctx context.Context, s *suggestion.AgentSuggestion) error {
	return m.SaveFunc(ctx, s)
}

func (m *mockSuggestionRepo) Update(ctx context.Context, s *suggestion.AgentSuggestion) error {
	return m.UpdateFunc(ctx, s)
}

func (m *mockSuggestionRepo) GetByID(ctx context.Context, id uint) (*suggestion.AgentSuggestion, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockSuggestionRepo) GetByTicketID(ctx context.Context, ticketID uint) (*suggestion.AgentSuggestion, error) {
	return m.GetByTicketFunc(ctx, ticketID)
}

func (m *mockSuggestionRepo) MarkReviewed(ctx context.Context, id uint, result suggestion.ReviewResult, reviewerID uint) (bool, error) {
	return m.MarkReviewedFunc(ctx, id, result, reviewerID)
}

type mockSettingRepo struct {
	GetOrCreateDefaultFunc func(ctx context.Context, defaults *setting.TriageSettings) (*setting.TriageSettings, error)
	UpdateFunc             func(ctx context.Context, s *setting.TriageSettings) error
}

func (m *mockSettingRepo) GetOrCreateDefault(ctx context.Context, defaults *setting.TriageSettings) (*setting.TriageSettings, error) {
	return m.GetOrCreateDefaultFunc(ctx, defaults)
}

func (m *mockSettingRepo) Update(ctx context.Context, s *setting.TriageSettings) error {
	return m.UpdateFunc(ctx, s)
}

// recordingAuditRecorder captures appended entries for assertions.
type recordingAuditRecorder struct {
	entries []*audit.Entry
	err     error
}

func (r *recordingAuditRecorder) Append(ctx context.Context, e *audit.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingAuditRecorder) actions() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action())
	}
	return out
}

func (r *recordingAuditRecorder) countAction(action string) int {
	n := 0
	for _, e := range r.entries {
		if e.Action() == action {
			n++
		}
	}
	return n
}

func (r *recordingAuditRecorder) findAction(action string) *audit.Entry {
	for _, e := range r.entries {
		if e.Action() == action {
			return e
		}
	}
	return nil
}

type mockClassifier struct {
	TriageFunc func(ctx context.Context, req *triage.Request) (*triage.Response, error)
}

func (m *mockClassifier) Triage(ctx context.Context, req *triage.Request) (*triage.Response, error) {
	return m.TriageFunc(ctx, req)
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
