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

func ticketInStatus(t *testing.T, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	now := time.Now()
	var closedAt *time.Time
	if status == vo.StatusClosed {
		closedAt = &now
	}
	assignee := testAgentID
	tk, err := ticket.ReconstructTicket(
		testTicketID, "TKT-LIFEC001", "Package never arrived",
		"Tracking says delivered but nothing is here.",
		vo.CategoryShipping, status, nil,
		testCreatorID, &assignee, nil, 3, now, now, nil, closedAt,
	)
	require.NoError(t, err)
	return tk
}

func TestCloseTicketUseCase_ClosesFromAnyNonClosedStatus(t *testing.T) {
	tests := []struct {
		name   string
		status vo.TicketStatus
	}{
		{name: "open", status: vo.StatusOpen},
		{name: "triaged", status: vo.StatusTriaged},
		{name: "waiting human", status: vo.StatusWaitingHuman},
		{name: "resolved", status: vo.StatusResolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updated *ticket.Ticket
			ticketRepo := &mockTicketRepo{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return ticketInStatus(t, tt.status), nil
				},
				UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
					updated = tk
					return nil
				},
			}
			auditRec := &recordingAuditRecorder{}
			uc := NewCloseTicketUseCase(ticketRepo, auditRec, testLogger())

			result, err := uc.Execute(context.Background(), CloseTicketCommand{
				TicketID: testTicketID, AgentID: testAgentID, Reason: "duplicate of TKT-LIFEC000",
			})
			require.NoError(t, err)

			assert.Equal(t, vo.StatusClosed, updated.Status())
			require.NotNil(t, updated.ClosedAt())
			assert.NotEmpty(t, result.TraceID)

			require.Len(t, auditRec.entries, 1)
			entry := auditRec.entries[0]
			assert.Equal(t, audit.ActionTicketClosed, entry.Action())
			assert.Equal(t, tt.status.String(), entry.Metadata()["oldStatus"])
			assert.Equal(t, "closed", entry.Metadata()["newStatus"])
			assert.Equal(t, result.TraceID, entry.TraceID())
		})
	}
}

func TestCloseTicketUseCase_AlreadyClosedIsInvalidState(t *testing.T) {
	ticketRepo := &mockTicketRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return ticketInStatus(t, vo.StatusClosed), nil
		},
	}
	auditRec := &recordingAuditRecorder{}
	uc := NewCloseTicketUseCase(ticketRepo, auditRec, testLogger())

	_, err := uc.Execute(context.Background(), CloseTicketCommand{TicketID: testTicketID, AgentID: testAgentID})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidStateError(err))
	assert.Empty(t, auditRec.entries)
}

func TestReopenTicketUseCase_ReopensClosedTicket(t *testing.T) {
	var updated *ticket.Ticket
	ticketRepo := &mockTicketRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return ticketInStatus(t, vo.StatusClosed), nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updated = tk
			return nil
		},
	}
	auditRec := &recordingAuditRecorder{}
	notifier := &recordingNotifier{}
	uc := NewReopenTicketUseCase(ticketRepo, auditRec, notifier, testLogger())

	result, err := uc.Execute(context.Background(), ReopenTicketCommand{
		TicketID: testTicketID, ActorID: testAgentID, Actor: audit.ActorAgent, Reason: "customer followed up",
	})
	require.NoError(t, err)

	assert.Equal(t, vo.StatusWaitingHuman, updated.Status())
	assert.Nil(t, updated.ClosedAt())
	// Reopen never auto-assigns.
	assert.Nil(t, updated.AssigneeID())

	require.Len(t, auditRec.entries, 1)
	entry := auditRec.entries[0]
	assert.Equal(t, audit.ActionTicketReopened, entry.Action())
	assert.Equal(t, "closed", entry.Metadata()["oldStatus"])
	assert.Equal(t, "waiting_human", entry.Metadata()["newStatus"])
	assert.Equal(t, result.TraceID, entry.TraceID())

	assert.Equal(t, []uint{testTicketID}, notifier.reopened)
}

func TestReopenTicketUseCase_UserReopenSkipsSelfNotification(t *testing.T) {
	ticketRepo := &mockTicketRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return ticketInStatus(t, vo.StatusClosed), nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error { return nil },
	}
	notifier := &recordingNotifier{}
	uc := NewReopenTicketUseCase(ticketRepo, &recordingAuditRecorder{}, notifier, testLogger())

	_, err := uc.Execute(context.Background(), ReopenTicketCommand{
		TicketID: testTicketID, ActorID: testCreatorID, Actor: audit.ActorUser,
	})
	require.NoError(t, err)
	assert.Empty(t, notifier.reopened)
}

func TestReopenTicketUseCase_UserCannotReopenOthersTicket(t *testing.T) {
	ticketRepo := &mockTicketRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return ticketInStatus(t, vo.StatusClosed), nil
		},
	}
	uc := NewReopenTicketUseCase(ticketRepo, &recordingAuditRecorder{}, &recordingNotifier{}, testLogger())

	_, err := uc.Execute(context.Background(), ReopenTicketCommand{
		TicketID: testTicketID, ActorID: testCreatorID + 1, Actor: audit.ActorUser,
	})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestReopenTicketUseCase_OnlyClosedTicketsReopen(t *testing.T) {
	for _, status := range []vo.TicketStatus{vo.StatusOpen, vo.StatusWaitingHuman, vo.StatusResolved} {
		t.Run(status.String(), func(t *testing.T) {
			ticketRepo := &mockTicketRepo{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return ticketInStatus(t, status), nil
				},
			}
			uc := NewReopenTicketUseCase(ticketRepo, &recordingAuditRecorder{}, &recordingNotifier{}, testLogger())

			_, err := uc.Execute(context.Background(), ReopenTicketCommand{
				TicketID: testTicketID, ActorID: testAgentID, Actor: audit.ActorAgent,
			})
			require.Error(t, err)
			assert.True(t, errors.IsInvalidStateError(err))
		})
	}
}
