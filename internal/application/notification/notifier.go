package notification

import (
	"context"
	"fmt"

	"triago/internal/domain/notification"
	"triago/internal/shared/logger"
)

// Notifier informs a ticket's creator about review outcomes. Delivery is
// best-effort: a failed notification is logged and never fails the calling
// operation.
type Notifier interface {
	TicketReplied(ctx context.Context, userID, ticketID uint, ticketNumber string)
	TicketResolved(ctx context.Context, userID, ticketID uint, ticketNumber string)
	TicketReopened(ctx context.Context, userID, ticketID uint, ticketNumber string)
}

// StoreNotifier persists notifications for the recipient to poll.
type StoreNotifier struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewStoreNotifier(repo notification.Repository, logger logger.Interface) *StoreNotifier {
	return &StoreNotifier{repo: repo, logger: logger}
}

func (n *StoreNotifier) TicketReplied(ctx context.Context, userID, ticketID uint, ticketNumber string) {
	n.deliver(ctx, userID, ticketID, notification.TypeTicketReplied,
		fmt.Sprintf("New reply on ticket %s", ticketNumber),
		fmt.Sprintf("An agent replied to your ticket %s.", ticketNumber))
}

func (n *StoreNotifier) TicketResolved(ctx context.Context, userID, ticketID uint, ticketNumber string) {
	n.deliver(ctx, userID, ticketID, notification.TypeTicketResolved,
		fmt.Sprintf("Ticket %s resolved", ticketNumber),
		fmt.Sprintf("Your ticket %s has been resolved.", ticketNumber))
}

func (n *StoreNotifier) TicketReopened(ctx context.Context, userID, ticketID uint, ticketNumber string) {
	n.deliver(ctx, userID, ticketID, notification.TypeTicketReopened,
		fmt.Sprintf("Ticket %s reopened", ticketNumber),
		fmt.Sprintf("Your ticket %s has been reopened and is awaiting an agent.", ticketNumber))
}

func (n *StoreNotifier) deliver(ctx context.Context, userID, ticketID uint, t notification.Type, title, content string) {
	msg, err := notification.NewNotification(userID, t, title, content, &ticketID)
	if err != nil {
		n.logger.Errorw("failed to build notification", "type", string(t), "error", err)
		return
	}
	if err := n.repo.Save(ctx, msg); err != nil {
		n.logger.Errorw("failed to persist notification", "type", string(t), "user_id", userID, "error", err)
	}
}
