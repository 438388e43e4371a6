package usecases

import (
	"context"
	"io"
	"log/slog"

	triageusecases "triago/internal/application/triage/usecases"
	"triago/internal/domain/audit"
	"triago/internal/domain/reply"
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

type mockReplyRepo struct {
	SaveFunc         func(ctx context.Context, r *reply.Reply) error
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*reply.Reply, error)
}

func (m *mockReplyRepo) Save(ctx context.Context, r *reply.Reply) error {
	return m.SaveFunc(ctx, r)
}

func (m *mockReplyRepo) ListByTicket(ctx context.Context, ticketID uint) ([]*reply.Reply, error) {
	return m.ListByTicketFunc(ctx, ticketID)
}

type mockAuditRepo struct {
	AppendFunc       func(ctx context.Context, e *audit.Entry) error
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*audit.Entry, error)
	ListByTraceFunc  func(ctx context.Context, traceID string) ([]*audit.Entry, error)
}

func (m *mockAuditRepo) Append(ctx context.Context, e *audit.Entry) error {
	return m.AppendFunc(ctx, e)
}

func (m *mockAuditRepo) ListByTicket(ctx context.Context, ticketID uint) ([]*audit.Entry, error) {
	return m.ListByTicketFunc(ctx, ticketID)
}

func (m *mockAuditRepo) ListByTrace(ctx context.Context, traceID string) ([]*audit.Entry, error) {
	return m.ListByTraceFunc(ctx, traceID)
}

type mockTriageExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd triageusecases.TriageTicketCommand) (*triageusecases.TriageTicketResult, error)
}

func (m *mockTriageExecutor) Execute(ctx context.Context, cmd triageusecases.TriageTicketCommand) (*triageusecases.TriageTicketResult, error) {
	return m.ExecuteFunc(ctx, cmd)
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
