package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triago/internal/domain/audit"
	"triago/internal/domain/ticket"
	vo "triago/internal/domain/ticket/valueobjects"
	"triago/internal/shared/errors"
)

func auditEntry(t *testing.T, ticketID uint, traceID, action string) *audit.Entry {
	t.Helper()
	e, err := audit.NewEntry(ticketID, traceID, audit.ActorSystem, nil, action, nil)
	require.NoError(t, err)
	return e
}

func viewableTicket(t *testing.T, id, creatorID uint) *ticket.Ticket {
	t.Helper()
	now := time.Now()
	tk, err := ticket.ReconstructTicket(
		id, "TKT-AUDIT001", "Title", "Body",
		vo.CategoryOther, vo.StatusWaitingHuman, nil,
		creatorID, nil, nil, 1, now, now, nil, nil,
	)
	require.NoError(t, err)
	return tk
}

func TestGetAuditTrailUseCase_GroupsByTrace(t *testing.T) {
	entries := []*audit.Entry{
		auditEntry(t, 5, "trace_create01", audit.ActionTriageEnqueued),
		auditEntry(t, 5, "trace_create01", audit.ActionAgentResponseReceived),
		auditEntry(t, 5, "trace_create01", audit.ActionTriageCompleted),
		auditEntry(t, 5, "trace_review01", audit.ActionAgentDraftAccepted),
		auditEntry(t, 5, "trace_close01", audit.ActionTicketClosed),
	}
	ticketRepo := &mockTicketRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return viewableTicket(t, 5, 9), nil
		},
	}
	auditRepo := &mockAuditRepo{
		ListByTicketFunc: func(ctx context.Context, ticketID uint) ([]*audit.Entry, error) {
			return entries, nil
		},
	}

	uc := NewGetAuditTrailUseCase(ticketRepo, auditRepo, testLogger())
	result, err := uc.Execute(context.Background(), GetAuditTrailQuery{TicketID: 5, UserID: 9, Role: "user"})
	require.NoError(t, err)

	assert.Len(t, result.Entries, 5)
	require.Len(t, result.Traces, 3)
	assert.Equal(t, "trace_create01", result.Traces[0].TraceID)
	assert.Len(t, result.Traces[0].Entries, 3)
	assert.Equal(t, "trace_review01", result.Traces[1].TraceID)
	assert.Equal(t, "trace_close01", result.Traces[2].TraceID)
}

func TestGetAuditTrailUseCase_ForbiddenForStrangers(t *testing.T) {
	ticketRepo := &mockTicketRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return viewableTicket(t, 5, 9), nil
		},
	}
	uc := NewGetAuditTrailUseCase(ticketRepo, &mockAuditRepo{}, testLogger())

	_, err := uc.Execute(context.Background(), GetAuditTrailQuery{TicketID: 5, UserID: 1000, Role: "user"})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}
