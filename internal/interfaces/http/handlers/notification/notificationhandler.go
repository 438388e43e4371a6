package notification

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"triago/internal/application/notification/usecases"
	"triago/internal/domain/notification"
	"triago/internal/shared/errors"
	"triago/internal/shared/logger"
	"triago/internal/shared/utils"
)

type NotificationHandler struct {
	listUC     usecases.ListNotificationsExecutor
	markReadUC usecases.MarkNotificationReadExecutor
	logger     logger.Interface
}

func NewNotificationHandler(
	listUC usecases.ListNotificationsExecutor,
	markReadUC usecases.MarkNotificationReadExecutor,
) *NotificationHandler {
	return &NotificationHandler{
		listUC:     listUC,
		markReadUC: markReadUC,
		logger:     logger.NewLogger(),
	}
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	TicketID  *uint     `json:"ticket_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationResponse(n *notification.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID(),
		Type:      string(n.Type()),
		Title:     n.Title(),
		Content:   n.Content(),
		TicketID:  n.TicketID(),
		Read:      n.Read(),
		CreatedAt: n.CreatedAt(),
	}
}

// ListNotifications handles GET /notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread_only", "false"))

	query := usecases.ListNotificationsQuery{
		UserID:     c.GetUint("user_id"),
		UnreadOnly: unreadOnly,
		Page:       page,
		PageSize:   pageSize,
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*NotificationResponse, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		items = append(items, toNotificationResponse(n))
	}

	utils.ListSuccessResponse(c, items, result.Total, query.Page, query.PageSize)
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid notification ID"))
		return
	}

	cmd := usecases.MarkNotificationReadCommand{
		NotificationID: uint(id),
		UserID:         c.GetUint("user_id"),
	}

	result, err := h.markReadUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", toNotificationResponse(result.Notification))
}
