// Package notification holds per-recipient in-app notifications. The store
// is durable by design: process-wide in-memory maps do not survive restarts
// or multiple instances, so every emit lands in the database.
package notification

import (
	"fmt"
	"time"
)

type Type string

const (
	TypeTicketReplied  Type = "ticket_replied"
	TypeTicketResolved Type = "ticket_resolved"
	TypeTicketReopened Type = "ticket_reopened"
)

func (t Type) IsValid() bool {
	return t == TypeTicketReplied || t == TypeTicketResolved || t == TypeTicketReopened
}

func (t Type) String() string {
	return string(t)
}

type Notification struct {
	id               uint
	userID           uint
	notificationType Type
	title            string
	content          string
	ticketID         *uint
	read             bool
	createdAt        time.Time
	updatedAt        time.Time
}

func NewNotification(
	userID uint,
	notificationType Type,
	title string,
	content string,
	ticketID *uint,
) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}

	now := time.Now()
	return &Notification{
		userID:           userID,
		notificationType: notificationType,
		title:            title,
		content:          content,
		ticketID:         ticketID,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructNotification(
	id uint,
	userID uint,
	notificationType Type,
	title string,
	content string,
	ticketID *uint,
	read bool,
	createdAt, updatedAt time.Time,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}

	return &Notification{
		id:               id,
		userID:           userID,
		notificationType: notificationType,
		title:            title,
		content:          content,
		ticketID:         ticketID,
		read:             read,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (n *Notification) ID() uint {
	return n.id
}

func (n *Notification) UserID() uint {
	return n.userID
}

func (n *Notification) Type() Type {
	return n.notificationType
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) Content() string {
	return n.content
}

func (n *Notification) TicketID() *uint {
	return n.ticketID
}

func (n *Notification) Read() bool {
	return n.read
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Notification) UpdatedAt() time.Time {
	return n.updatedAt
}

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

func (n *Notification) MarkRead() {
	if n.read {
		return
	}
	n.read = true
	n.updatedAt = time.Now()
}
