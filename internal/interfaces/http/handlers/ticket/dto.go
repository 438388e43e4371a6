package ticket

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	reviewusecases "triago/internal/application/review/usecases"
	"triago/internal/application/ticket/usecases"
	"triago/internal/domain/audit"
	"triago/internal/domain/reply"
	"triago/internal/domain/review"
	"triago/internal/domain/suggestion"
	"triago/internal/domain/ticket"
	"triago/internal/shared/errors"
	"triago/internal/shared/services/markdown"
)

type CreateTicketRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required,max=5000"`
	Category    string   `json:"category" binding:"required,oneof=billing tech shipping other"`
	Attachments []string `json:"attachments,omitempty" binding:"max=10"`
}

func (r *CreateTicketRequest) ToCommand(creatorID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		CreatorID:   creatorID,
		Attachments: r.Attachments,
	}
}

type ReviewDraftRequest struct {
	Action          string `json:"action" binding:"required,oneof=accept edit reject"`
	EditedReply     string `json:"edited_reply,omitempty" binding:"max=10000"`
	Feedback        string `json:"feedback,omitempty" binding:"max=2000"`
	AgentName       string `json:"agent_name,omitempty" binding:"max=100"`
	SendImmediately bool   `json:"send_immediately"`
	CloseTicket     bool   `json:"close_ticket"`
}

func (r *ReviewDraftRequest) ToCommand(ticketID, agentID uint) reviewusecases.ReviewDraftCommand {
	return reviewusecases.ReviewDraftCommand{
		TicketID:        ticketID,
		AgentID:         agentID,
		AgentName:       r.AgentName,
		Action:          review.Action(r.Action),
		EditedReply:     r.EditedReply,
		Feedback:        r.Feedback,
		SendImmediately: r.SendImmediately,
		CloseTicket:     r.CloseTicket,
	}
}

type CloseTicketRequest struct {
	Reason string `json:"reason,omitempty" binding:"max=500"`
}

type ReopenTicketRequest struct {
	Reason string `json:"reason,omitempty" binding:"max=500"`
}

type ListTicketsRequest struct {
	Page       int
	PageSize   int
	Status     string
	Category   string
	AssignedMe bool
	SortBy     string
	SortOrder  string
}

func (r *ListTicketsRequest) ToQuery(userID uint, role string) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		UserID:     userID,
		Role:       role,
		Status:     r.Status,
		Category:   r.Category,
		AssignedMe: r.AssignedMe,
		Page:       r.Page,
		PageSize:   r.PageSize,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
	}
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	req := &ListTicketsRequest{
		Page:      page,
		PageSize:  pageSize,
		Status:    c.Query("status"),
		Category:  c.Query("category"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if assignedMe := c.Query("assigned_me"); assignedMe != "" {
		v, err := strconv.ParseBool(assignedMe)
		if err != nil {
			return nil, errors.NewValidationError("Invalid assigned_me")
		}
		req.AssignedMe = v
	}

	return req, nil
}

type TicketResponse struct {
	ID           uint       `json:"id"`
	Number       string     `json:"number"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	Attachments  []string   `json:"attachments,omitempty"`
	CreatorID    uint       `json:"creator_id"`
	AssigneeID   *uint      `json:"assignee_id,omitempty"`
	SuggestionID *uint      `json:"suggestion_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}

func toTicketResponse(t *ticket.Ticket) *TicketResponse {
	if t == nil {
		return nil
	}
	return &TicketResponse{
		ID:           t.ID(),
		Number:       t.Number(),
		Title:        t.Title(),
		Description:  t.Description(),
		Category:     t.Category().String(),
		Status:       t.Status().String(),
		Attachments:  t.Attachments(),
		CreatorID:    t.CreatorID(),
		AssigneeID:   t.AssigneeID(),
		SuggestionID: t.SuggestionID(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		ResolvedAt:   t.ResolvedAt(),
		ClosedAt:     t.ClosedAt(),
	}
}

type SuggestionResponse struct {
	ID                 uint       `json:"id"`
	TicketID           uint       `json:"ticket_id"`
	PredictedCategory  string     `json:"predicted_category"`
	Citations          []string   `json:"citations,omitempty"`
	DraftReply         string     `json:"draft_reply"`
	DraftReplyHTML     string     `json:"draft_reply_html,omitempty"`
	Confidence         float64    `json:"confidence"`
	OriginalConfidence float64    `json:"original_confidence"`
	AutoClosed         bool       `json:"auto_closed"`
	Reviewed           bool       `json:"reviewed"`
	ReviewResult       string     `json:"review_result,omitempty"`
	ReviewerID         *uint      `json:"reviewer_id,omitempty"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toSuggestionResponse(s *suggestion.AgentSuggestion, md markdown.Service) *SuggestionResponse {
	if s == nil {
		return nil
	}

	resp := &SuggestionResponse{
		ID:                 s.ID(),
		TicketID:           s.TicketID(),
		PredictedCategory:  s.PredictedCategory(),
		Citations:          s.Citations(),
		DraftReply:         s.DraftReply(),
		Confidence:         s.Confidence(),
		OriginalConfidence: s.OriginalConfidence(),
		AutoClosed:         s.AutoClosed(),
		Reviewed:           s.Reviewed(),
		ReviewResult:       s.ReviewResult().String(),
		ReviewerID:         s.ReviewerID(),
		ReviewedAt:         s.ReviewedAt(),
		CreatedAt:          s.CreatedAt(),
	}

	// Rendering failures degrade to the raw markdown body.
	if html, err := md.ToHTMLSanitized(s.DraftReply()); err == nil {
		resp.DraftReplyHTML = html
	}

	return resp
}

type ReplyResponse struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	AuthorID   uint      `json:"author_id"`
	AuthorType string    `json:"author_type"`
	Body       string    `json:"body"`
	BodyHTML   string    `json:"body_html,omitempty"`
	Citations  []string  `json:"citations,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toReplyResponse(r *reply.Reply, md markdown.Service) *ReplyResponse {
	resp := &ReplyResponse{
		ID:         r.ID(),
		TicketID:   r.TicketID(),
		AuthorID:   r.AuthorID(),
		AuthorType: string(r.AuthorType()),
		Body:       r.Body(),
		Citations:  r.Citations(),
		CreatedAt:  r.CreatedAt(),
	}

	if html, err := md.ToHTMLSanitized(r.Body()); err == nil {
		resp.BodyHTML = html
	}

	return resp
}

type TicketDetailResponse struct {
	Ticket     *TicketResponse     `json:"ticket"`
	Suggestion *SuggestionResponse `json:"suggestion,omitempty"`
	Replies    []*ReplyResponse    `json:"replies"`
}

type CreateTicketResponse struct {
	Ticket       *TicketResponse     `json:"ticket"`
	Suggestion   *SuggestionResponse `json:"suggestion,omitempty"`
	TraceID      string              `json:"trace_id"`
	SuggestionID uint                `json:"suggestion_id,omitempty"`
	AutoClosed   bool                `json:"auto_closed"`
	Confidence   float64             `json:"confidence,omitempty"`
	TriageFailed bool                `json:"triage_failed,omitempty"`
}

type ReviewDraftResponse struct {
	Ticket       *TicketResponse `json:"ticket"`
	ReviewResult string          `json:"review_result"`
	FinalReply   string          `json:"final_reply,omitempty"`
	TraceID      string          `json:"trace_id"`
	ReplySent    bool            `json:"reply_sent"`
}

type AuditEntryResponse struct {
	ID        uint                   `json:"id"`
	TraceID   string                 `json:"trace_id"`
	Actor     string                 `json:"actor"`
	ActorID   *uint                  `json:"actor_id,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func toAuditEntryResponse(e *audit.Entry) *AuditEntryResponse {
	return &AuditEntryResponse{
		ID:        e.ID(),
		TraceID:   e.TraceID(),
		Actor:     e.Actor().String(),
		ActorID:   e.ActorID(),
		Action:    e.Action(),
		Metadata:  e.Metadata(),
		CreatedAt: e.CreatedAt(),
	}
}

type TraceGroupResponse struct {
	TraceID string                `json:"trace_id"`
	Entries []*AuditEntryResponse `json:"entries"`
}

type AuditTrailResponse struct {
	Entries []*AuditEntryResponse `json:"entries"`
	Traces  []TraceGroupResponse  `json:"traces"`
}

func toAuditTrailResponse(result *usecases.GetAuditTrailResult) *AuditTrailResponse {
	resp := &AuditTrailResponse{
		Entries: make([]*AuditEntryResponse, 0, len(result.Entries)),
		Traces:  make([]TraceGroupResponse, 0, len(result.Traces)),
	}

	for _, e := range result.Entries {
		resp.Entries = append(resp.Entries, toAuditEntryResponse(e))
	}

	for _, g := range result.Traces {
		group := TraceGroupResponse{
			TraceID: g.TraceID,
			Entries: make([]*AuditEntryResponse, 0, len(g.Entries)),
		}
		for _, e := range g.Entries {
			group.Entries = append(group.Entries, toAuditEntryResponse(e))
		}
		resp.Traces = append(resp.Traces, group)
	}

	return resp
}
