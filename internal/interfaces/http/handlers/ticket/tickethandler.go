package ticket

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	reviewusecases "triago/internal/application/review/usecases"
	"triago/internal/application/ticket/usecases"
	"triago/internal/domain/audit"
	"triago/internal/shared/authorization"
	"triago/internal/shared/errors"
	"triago/internal/shared/logger"
	"triago/internal/shared/services/markdown"
	"triago/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC  usecases.CreateTicketExecutor
	getTicketUC     usecases.GetTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	getAuditTrailUC usecases.GetAuditTrailExecutor
	reviewDraftUC   reviewusecases.ReviewDraftExecutor
	closeTicketUC   reviewusecases.CloseTicketExecutor
	reopenTicketUC  reviewusecases.ReopenTicketExecutor
	markdown        markdown.Service
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getAuditTrailUC usecases.GetAuditTrailExecutor,
	reviewDraftUC reviewusecases.ReviewDraftExecutor,
	closeTicketUC reviewusecases.CloseTicketExecutor,
	reopenTicketUC reviewusecases.ReopenTicketExecutor,
	markdownService markdown.Service,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		getTicketUC:     getTicketUC,
		listTicketsUC:   listTicketsUC,
		getAuditTrailUC: getAuditTrailUC,
		reviewDraftUC:   reviewDraftUC,
		closeTicketUC:   closeTicketUC,
		reopenTicketUC:  reopenTicketUC,
		markdown:        markdownService,
		logger:          logger.NewLogger(),
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	for _, attachment := range req.Attachments {
		if err := utils.ValidateAttachmentURL(attachment); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	userID := c.GetUint("user_id")
	cmd := req.ToCommand(userID)

	result, err := h.createTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, CreateTicketResponse{
		Ticket:       toTicketResponse(result.Ticket),
		Suggestion:   toSuggestionResponse(result.Suggestion, h.markdown),
		TraceID:      result.TraceID,
		SuggestionID: result.SuggestionID,
		AutoClosed:   result.AutoClosed,
		Confidence:   result.Confidence,
		TriageFailed: result.TriageFailed,
	}, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetTicketQuery{
		TicketID: ticketID,
		UserID:   c.GetUint("user_id"),
		Role:     c.GetString("user_role"),
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	replies := make([]*ReplyResponse, 0, len(result.Replies))
	for _, r := range result.Replies {
		replies = append(replies, toReplyResponse(r, h.markdown))
	}

	utils.SuccessResponse(c, http.StatusOK, "", TicketDetailResponse{
		Ticket:     toTicketResponse(result.Ticket),
		Suggestion: toSuggestionResponse(result.Suggestion, h.markdown),
		Replies:    replies,
	})
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	req, err := parseListTicketsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := req.ToQuery(c.GetUint("user_id"), c.GetString("user_role"))

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*TicketResponse, 0, len(result.Tickets))
	for _, t := range result.Tickets {
		items = append(items, toTicketResponse(t))
	}

	utils.ListSuccessResponse(c, items, result.Total, req.Page, req.PageSize)
}

// ReviewDraft handles POST /tickets/:id/review-draft
func (h *TicketHandler) ReviewDraft(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReviewDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for review draft", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := req.ToCommand(ticketID, c.GetUint("user_id"))

	result, err := h.reviewDraftUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Draft review recorded", ReviewDraftResponse{
		Ticket:       toTicketResponse(result.Ticket),
		ReviewResult: result.ReviewResult.String(),
		FinalReply:   result.FinalReply,
		TraceID:      result.TraceID,
		ReplySent:    result.ReplySent,
	})
}

// CloseTicket handles POST /tickets/:id/close
func (h *TicketHandler) CloseTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Body is optional; an empty body means no close reason.
	var req CloseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := reviewusecases.CloseTicketCommand{
		TicketID: ticketID,
		AgentID:  c.GetUint("user_id"),
		Reason:   req.Reason,
	}

	result, err := h.closeTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket closed successfully", gin.H{
		"ticket":   toTicketResponse(result.Ticket),
		"trace_id": result.TraceID,
	})
}

// ReopenTicket handles POST /tickets/:id/reopen
func (h *TicketHandler) ReopenTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReopenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := audit.ActorAgent
	if !authorization.ParseUserRole(c.GetString("user_role")).IsAgent() {
		actor = audit.ActorUser
	}

	cmd := reviewusecases.ReopenTicketCommand{
		TicketID: ticketID,
		ActorID:  c.GetUint("user_id"),
		Actor:    actor,
		Reason:   req.Reason,
	}

	result, err := h.reopenTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket reopened successfully", gin.H{
		"ticket":   toTicketResponse(result.Ticket),
		"trace_id": result.TraceID,
	})
}

// GetAuditTrail handles GET /tickets/:id/audit
func (h *TicketHandler) GetAuditTrail(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetAuditTrailQuery{
		TicketID: ticketID,
		UserID:   c.GetUint("user_id"),
		Role:     c.GetString("user_role"),
	}

	result, err := h.getAuditTrailUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toAuditTrailResponse(result))
}

func parseTicketID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid ticket ID")
	}
	return uint(id), nil
}
