package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reviewusecases "triago/internal/application/review/usecases"
	"triago/internal/application/ticket/usecases"
	"triago/internal/domain/suggestion"
	domainticket "triago/internal/domain/ticket"
	vo "triago/internal/domain/ticket/valueobjects"
	"triago/internal/interfaces/http/handlers/testutil"
	"triago/internal/shared/errors"
	"triago/internal/shared/services/markdown"
)

type mockCreateTicketUC struct {
	result *usecases.CreateTicketResult
	err    error
	gotCmd *usecases.CreateTicketCommand
}

func (m *mockCreateTicketUC) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error) {
	m.gotCmd = &cmd
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *usecases.GetTicketResult
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, _ usecases.GetTicketQuery) (*usecases.GetTicketResult, error) {
	return m.result, m.err
}

type mockListTicketsUC struct {
	result   *usecases.ListTicketsResult
	err      error
	gotQuery *usecases.ListTicketsQuery
}

func (m *mockListTicketsUC) Execute(_ context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.gotQuery = &query
	return m.result, m.err
}

type mockGetAuditTrailUC struct {
	result *usecases.GetAuditTrailResult
	err    error
}

func (m *mockGetAuditTrailUC) Execute(_ context.Context, _ usecases.GetAuditTrailQuery) (*usecases.GetAuditTrailResult, error) {
	return m.result, m.err
}

type mockReviewDraftUC struct {
	result *reviewusecases.ReviewDraftResult
	err    error
	gotCmd *reviewusecases.ReviewDraftCommand
}

func (m *mockReviewDraftUC) Execute(_ context.Context, cmd reviewusecases.ReviewDraftCommand) (*reviewusecases.ReviewDraftResult, error) {
	m.gotCmd = &cmd
	return m.result, m.err
}

type mockCloseTicketUC struct {
	result *reviewusecases.CloseTicketResult
	err    error
}

func (m *mockCloseTicketUC) Execute(_ context.Context, _ reviewusecases.CloseTicketCommand) (*reviewusecases.CloseTicketResult, error) {
	return m.result, m.err
}

type mockReopenTicketUC struct {
	result *reviewusecases.ReopenTicketResult
	err    error
	gotCmd *reviewusecases.ReopenTicketCommand
}

func (m *mockReopenTicketUC) Execute(_ context.Context, cmd reviewusecases.ReopenTicketCommand) (*reviewusecases.ReopenTicketResult, error) {
	m.gotCmd = &cmd
	return m.result, m.err
}

type testDeps struct {
	createTicketUC  usecases.CreateTicketExecutor
	getTicketUC     usecases.GetTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	getAuditTrailUC usecases.GetAuditTrailExecutor
	reviewDraftUC   reviewusecases.ReviewDraftExecutor
	closeTicketUC   reviewusecases.CloseTicketExecutor
	reopenTicketUC  reviewusecases.ReopenTicketExecutor
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	return NewTicketHandler(
		deps.createTicketUC,
		deps.getTicketUC,
		deps.listTicketsUC,
		deps.getAuditTrailUC,
		deps.reviewDraftUC,
		deps.closeTicketUC,
		deps.reopenTicketUC,
		markdown.NewService(),
	)
}

func testTicket(t *testing.T, status vo.TicketStatus) *domainticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := domainticket.ReconstructTicket(
		7, "TKT-A1B2C3D4", "Broken invoice", "The invoice totals are wrong",
		vo.CategoryBilling, status, nil, 40, nil, nil, 1, now, now, nil, nil,
	)
	require.NoError(t, err)
	return tk
}

func testSuggestion(t *testing.T) *suggestion.AgentSuggestion {
	t.Helper()
	now := time.Now().UTC()
	s, err := suggestion.ReconstructAgentSuggestion(
		20, 7, "billing", []string{"kb-refunds"}, "Please check the **billing portal**.",
		0.61, 0.61, false, suggestion.ModelInfo{Provider: "acme", Model: "classifier-lg"},
		false, suggestion.ReviewNone, nil, nil, now, now,
	)
	require.NoError(t, err)
	return s
}

func TestTicketHandler_CreateTicket_Success(t *testing.T) {
	mockUC := &mockCreateTicketUC{
		result: &usecases.CreateTicketResult{
			Ticket:       testTicket(t, vo.StatusWaitingHuman),
			Suggestion:   testSuggestion(t),
			TraceID:      "trace_abc123",
			SuggestionID: 20,
			Confidence:   0.61,
		},
	}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	reqBody := CreateTicketRequest{
		Title:       "Broken invoice",
		Description: "The invoice totals are wrong",
		Category:    "billing",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 40, "user")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	require.NotNil(t, mockUC.gotCmd)
	assert.Equal(t, uint(40), mockUC.gotCmd.CreatorID)
	assert.Equal(t, "billing", mockUC.gotCmd.Category)

	var data CreateTicketResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "trace_abc123", data.TraceID)
	assert.Equal(t, uint(20), data.SuggestionID)
	assert.False(t, data.TriageFailed)

	// The draft is embedded so the client sees it without a second fetch.
	require.NotNil(t, data.Suggestion)
	assert.Equal(t, "Please check the **billing portal**.", data.Suggestion.DraftReply)
	assert.Equal(t, []string{"kb-refunds"}, data.Suggestion.Citations)
	assert.Contains(t, data.Suggestion.DraftReplyHTML, "<strong>billing portal</strong>")
	assert.False(t, data.Suggestion.Reviewed)
}

func TestTicketHandler_CreateTicket_BindError(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	// Missing required fields
	reqBody := map[string]string{"title": "only title"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 40, "user")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_CreateTicket_RejectsPrivateAttachmentURL(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	reqBody := CreateTicketRequest{
		Title:       "Broken invoice",
		Description: "The invoice totals are wrong",
		Category:    "billing",
		Attachments: []string{"http://169.254.169.254/latest/meta-data"},
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 40, "user")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_CreateTicket_RejectsUnknownCategory(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	reqBody := CreateTicketRequest{
		Title:       "Broken invoice",
		Description: "The invoice totals are wrong",
		Category:    "gardening",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 40, "user")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_CreateTicket_SurfacesTriageFailure(t *testing.T) {
	mockUC := &mockCreateTicketUC{
		result: &usecases.CreateTicketResult{
			Ticket:       testTicket(t, vo.StatusOpen),
			TraceID:      "trace_def456",
			TriageFailed: true,
		},
	}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	reqBody := CreateTicketRequest{
		Title:       "Broken invoice",
		Description: "The invoice totals are wrong",
		Category:    "billing",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 40, "user")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data CreateTicketResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.True(t, data.TriageFailed)
	assert.Equal(t, "open", data.Ticket.Status)
}

func TestTicketHandler_GetTicket_Success(t *testing.T) {
	mockUC := &mockGetTicketUC{
		result: &usecases.GetTicketResult{
			Ticket:     testTicket(t, vo.StatusWaitingHuman),
			Suggestion: testSuggestion(t),
		},
	}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/7", nil)
	testutil.SetAuthContext(c, 40, "user")
	testutil.SetURLParam(c, "id", "7")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data TicketDetailResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotNil(t, data.Suggestion)
	assert.Equal(t, uint(20), data.Suggestion.ID)
	assert.Contains(t, data.Suggestion.DraftReplyHTML, "<strong>billing portal</strong>")
}

func TestTicketHandler_GetTicket_InvalidID(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/abc", nil)
	testutil.SetAuthContext(c, 40, "user")
	testutil.SetURLParam(c, "id", "abc")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_GetTicket_Forbidden(t *testing.T) {
	mockUC := &mockGetTicketUC{err: errors.NewForbiddenError("not your ticket")}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/7", nil)
	testutil.SetAuthContext(c, 99, "user")
	testutil.SetURLParam(c, "id", "7")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTicketHandler_ListTickets_PassesFilters(t *testing.T) {
	mockUC := &mockListTicketsUC{
		result: &usecases.ListTicketsResult{Total: 1},
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, 30, "agent")
	testutil.SetQueryParams(c, map[string]string{
		"status":      "waiting_human",
		"assigned_me": "true",
		"page":        "2",
		"page_size":   "10",
	})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.gotQuery)
	assert.Equal(t, "waiting_human", mockUC.gotQuery.Status)
	assert.True(t, mockUC.gotQuery.AssignedMe)
	assert.Equal(t, 2, mockUC.gotQuery.Page)
	assert.Equal(t, 10, mockUC.gotQuery.PageSize)
	assert.Equal(t, "agent", mockUC.gotQuery.Role)
}

func TestTicketHandler_ReviewDraft_Accept(t *testing.T) {
	mockUC := &mockReviewDraftUC{
		result: &reviewusecases.ReviewDraftResult{
			Ticket:       testTicket(t, vo.StatusTriaged),
			ReviewResult: suggestion.ReviewAccepted,
			FinalReply:   "Please check the **billing portal**.",
			TraceID:      "trace_rev001",
		},
	}
	handler := newTestTicketHandler(testDeps{reviewDraftUC: mockUC})

	reqBody := ReviewDraftRequest{Action: "accept", AgentName: "Dana"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/review-draft", reqBody)
	testutil.SetAuthContext(c, 30, "agent")
	testutil.SetURLParam(c, "id", "7")

	handler.ReviewDraft(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.gotCmd)
	assert.Equal(t, uint(7), mockUC.gotCmd.TicketID)
	assert.Equal(t, uint(30), mockUC.gotCmd.AgentID)
	assert.Equal(t, "Dana", mockUC.gotCmd.AgentName)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data ReviewDraftResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "accepted", data.ReviewResult)
	assert.Equal(t, "trace_rev001", data.TraceID)
}

func TestTicketHandler_ReviewDraft_RejectsUnknownAction(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	reqBody := ReviewDraftRequest{Action: "approve"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/review-draft", reqBody)
	testutil.SetAuthContext(c, 30, "agent")
	testutil.SetURLParam(c, "id", "7")

	handler.ReviewDraft(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_ReviewDraft_Conflict(t *testing.T) {
	mockUC := &mockReviewDraftUC{
		err: errors.NewConflictError("suggestion already reviewed by another agent"),
	}
	handler := newTestTicketHandler(testDeps{reviewDraftUC: mockUC})

	reqBody := ReviewDraftRequest{Action: "accept"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/review-draft", reqBody)
	testutil.SetAuthContext(c, 31, "agent")
	testutil.SetURLParam(c, "id", "7")

	handler.ReviewDraft(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTicketHandler_CloseTicket_EmptyBodyAllowed(t *testing.T) {
	mockUC := &mockCloseTicketUC{
		result: &reviewusecases.CloseTicketResult{
			Ticket:  testTicket(t, vo.StatusClosed),
			TraceID: "trace_close1",
		},
	}
	handler := newTestTicketHandler(testDeps{closeTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/close", nil)
	testutil.SetAuthContext(c, 30, "agent")
	testutil.SetURLParam(c, "id", "7")

	handler.CloseTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTicketHandler_ReopenTicket_UserActor(t *testing.T) {
	mockUC := &mockReopenTicketUC{
		result: &reviewusecases.ReopenTicketResult{
			Ticket:  testTicket(t, vo.StatusWaitingHuman),
			TraceID: "trace_reopen1",
		},
	}
	handler := newTestTicketHandler(testDeps{reopenTicketUC: mockUC})

	reqBody := ReopenTicketRequest{Reason: "still broken"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/reopen", reqBody)
	testutil.SetAuthContext(c, 40, "user")
	testutil.SetURLParam(c, "id", "7")

	handler.ReopenTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.gotCmd)
	assert.Equal(t, "user", mockUC.gotCmd.Actor.String())
	assert.Equal(t, "still broken", mockUC.gotCmd.Reason)
}

func TestTicketHandler_ReopenTicket_AgentActor(t *testing.T) {
	mockUC := &mockReopenTicketUC{
		result: &reviewusecases.ReopenTicketResult{
			Ticket:  testTicket(t, vo.StatusWaitingHuman),
			TraceID: "trace_reopen2",
		},
	}
	handler := newTestTicketHandler(testDeps{reopenTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/reopen", nil)
	testutil.SetAuthContext(c, 30, "agent")
	testutil.SetURLParam(c, "id", "7")

	handler.ReopenTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.gotCmd)
	assert.Equal(t, "agent", mockUC.gotCmd.Actor.String())
}

func TestTicketHandler_GetAuditTrail_GroupsTraces(t *testing.T) {
	mockUC := &mockGetAuditTrailUC{
		result: &usecases.GetAuditTrailResult{
			Traces: []usecases.TraceGroup{
				{TraceID: "trace_1"},
				{TraceID: "trace_2"},
			},
		},
	}
	handler := newTestTicketHandler(testDeps{getAuditTrailUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/7/audit", nil)
	testutil.SetAuthContext(c, 30, "agent")
	testutil.SetURLParam(c, "id", "7")

	handler.GetAuditTrail(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data AuditTrailResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Traces, 2)
	assert.Equal(t, "trace_1", data.Traces[0].TraceID)
	assert.Equal(t, "trace_2", data.Traces[1].TraceID)
}
