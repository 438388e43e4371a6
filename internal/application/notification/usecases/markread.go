package usecases

import (
	"context"

	"triago/internal/domain/notification"
	"triago/internal/shared/errors"
	"triago/internal/shared/logger"
)

type MarkNotificationReadCommand struct {
	NotificationID uint
	UserID         uint
}

type MarkNotificationReadResult struct {
	Notification *notification.Notification
}

type MarkNotificationReadExecutor interface {
	Execute(ctx context.Context, cmd MarkNotificationReadCommand) (*MarkNotificationReadResult, error)
}

// MarkNotificationReadUseCase marks a notification as read. Users can only
// touch their own notifications.
type MarkNotificationReadUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewMarkNotificationReadUseCase(repo notification.Repository, logger logger.Interface) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{repo: repo, logger: logger}
}

func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, cmd MarkNotificationReadCommand) (*MarkNotificationReadResult, error) {
	if cmd.NotificationID == 0 {
		return nil, errors.NewValidationError("notification ID is required")
	}
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	n, err := uc.repo.GetByID(ctx, cmd.NotificationID)
	if err != nil {
		return nil, errors.NewNotFoundError("notification not found")
	}

	if n.UserID() != cmd.UserID {
		return nil, errors.NewForbiddenError("notification belongs to another user")
	}

	if !n.Read() {
		n.MarkRead()
		if err := uc.repo.Update(ctx, n); err != nil {
			uc.logger.Errorw("failed to mark notification read",
				"notification_id", cmd.NotificationID, "error", err)
			return nil, errors.NewInternalError("failed to mark notification read", err.Error())
		}
	}

	return &MarkNotificationReadResult{Notification: n}, nil
}
