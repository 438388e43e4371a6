package usecases

import (
	"context"
	"io"
	"log/slog"

	"triago/internal/domain/audit"
	"triago/internal/domain/reply"
	"triago/internal/domain/review"
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

type mockReviewRepo struct {
	SaveFunc                func(ctx context.Context, r *review.Record) error
	UpdateFunc              func(ctx context.Context, r *review.Record) error
	GetByTicketAndAgentFunc func(ctx context.Context, ticketID, agentID uint) (*review.Record, error)
	ListByTicketFunc        func(ctx context.Context, ticketID uint) ([]*review.Record, error)
	ListPendingFunc         func(ctx context.Context, limit int) ([]*review.Record, error)
}

func (m *mockReviewRepo) Save(ctx context.Context, r *review.Record) error {
	return m.SaveFunc(ctx, r)
}

func (m *mockReviewRepo) Update(ctx context.Context, r *review.Record) error {
	return m.UpdateFunc(ctx, r)
}

func (m *mockReviewRepo) GetByTicketAndAgent(ctx context.Context, ticketID, agentID uint) (*review.Record, error) {
	return m.GetByTicketAndAgentFunc(ctx, ticketID, agentID)
}

func (m *mockReviewRepo) ListByTicket(ctx context.Context, ticketID uint) ([]*review.Record, error) {
	return m.ListByTicketFunc(ctx, ticketID)
}

func (m *mockReviewRepo) ListPending(ctx context.Context, limit int) ([]*review.Record, error) {
	return m.ListPendingFunc(ctx, limit)
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

type recordingAuditRecorder struct {
	entries []*audit.Entry
}

func (r *recordingAuditRecorder) Append(ctx context.Context, e *audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
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

// recordingNotifier captures outgoing notifications by kind.
type recordingNotifier struct {
	replied  []uint
	resolved []uint
	reopened []uint
}

func (n *recordingNotifier) TicketReplied(ctx context.Context, userID, ticketID uint, ticketNumber string) {
	n.replied = append(n.replied, ticketID)
}

func (n *recordingNotifier) TicketResolved(ctx context.Context, userID, ticketID uint, ticketNumber string) {
	n.resolved = append(n.resolved, ticketID)
}

func (n *recordingNotifier) TicketReopened(ctx context.Context, userID, ticketID uint, ticketNumber string) {
	n.reopened = append(n.reopened, ticketID)
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
