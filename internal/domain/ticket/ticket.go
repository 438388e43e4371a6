package ticket

import (
	"fmt"
	"time"

	vo "triago/internal/domain/ticket/valueobjects"
)

type Ticket struct {
	id           uint
	number       string
	title        string
	description  string
	category     vo.Category
	status       vo.TicketStatus
	attachments  []string
	creatorID    uint
	assigneeID   *uint
	suggestionID *uint
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	resolvedAt   *time.Time
	closedAt     *time.Time
}

func NewTicket(
	title string,
	description string,
	category vo.Category,
	creatorID uint,
	attachments []string,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if attachments == nil {
		attachments = []string{}
	}

	now := time.Now()
	return &Ticket{
		title:       title,
		description: description,
		category:    category,
		status:      vo.StatusOpen,
		attachments: attachments,
		creatorID:   creatorID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	number string,
	title string,
	description string,
	category vo.Category,
	status vo.TicketStatus,
	attachments []string,
	creatorID uint,
	assigneeID *uint,
	suggestionID *uint,
	version int,
	createdAt, updatedAt time.Time,
	resolvedAt *time.Time,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if attachments == nil {
		attachments = []string{}
	}

	return &Ticket{
		id:           id,
		number:       number,
		title:        title,
		description:  description,
		category:     category,
		status:       status,
		attachments:  attachments,
		creatorID:    creatorID,
		assigneeID:   assigneeID,
		suggestionID: suggestionID,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		resolvedAt:   resolvedAt,
		closedAt:     closedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Category() vo.Category {
	return t.category
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Attachments() []string {
	out := make([]string, len(t.attachments))
	copy(out, t.attachments)
	return out
}

func (t *Ticket) CreatorID() uint {
	return t.creatorID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) SuggestionID() *uint {
	return t.suggestionID
}

func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ResolvedAt() *time.Time {
	return t.resolvedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// ApplyTriage records one triage run's outcome: the predicted category, the
// link to the persisted suggestion, and the decided status (resolved when
// auto-closing, waiting_human otherwise).
func (t *Ticket) ApplyTriage(category vo.Category, suggestionID uint, autoClosed bool) error {
	if !category.IsValid() {
		return fmt.Errorf("invalid category: %s", category)
	}
	if suggestionID == 0 {
		return fmt.Errorf("suggestion ID cannot be zero")
	}

	target := vo.StatusWaitingHuman
	if autoClosed {
		target = vo.StatusResolved
	}
	if !t.status.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, target)
	}

	t.category = category
	t.suggestionID = &suggestionID
	t.status = target
	if autoClosed {
		now := time.Now()
		t.resolvedAt = &now
	}
	t.updatedAt = time.Now()
	t.version++

	return nil
}

func (t *Ticket) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	t.assigneeID = &assigneeID
	t.updatedAt = time.Now()
	t.version++

	if t.status.IsWaitingHuman() {
		t.status = vo.StatusTriaged
	}

	return nil
}

func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if t.status == newStatus {
		return nil
	}

	if !t.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, newStatus)
	}

	t.status = newStatus
	t.updatedAt = time.Now()
	t.version++

	if newStatus.IsResolved() && t.resolvedAt == nil {
		now := time.Now()
		t.resolvedAt = &now
	}

	if newStatus.IsClosed() && t.closedAt == nil {
		now := time.Now()
		t.closedAt = &now
	}

	return nil
}

// Close moves the ticket to closed from any non-closed status.
func (t *Ticket) Close() error {
	if t.status.IsClosed() {
		return fmt.Errorf("ticket is already closed")
	}

	t.status = vo.StatusClosed
	now := time.Now()
	t.closedAt = &now
	t.updatedAt = now
	t.version++

	return nil
}

// Reopen returns a closed ticket to the human review queue. It never
// auto-assigns; the previous assignee is cleared.
func (t *Ticket) Reopen() error {
	if !t.status.IsClosed() {
		return fmt.Errorf("only closed tickets can be reopened")
	}

	t.status = vo.StatusWaitingHuman
	t.closedAt = nil
	t.resolvedAt = nil
	t.assigneeID = nil
	t.updatedAt = time.Now()
	t.version++

	return nil
}

func (t *Ticket) CanBeViewedBy(userID uint, role string) bool {
	if role == "admin" || role == "agent" {
		return true
	}

	if t.creatorID == userID {
		return true
	}

	if t.assigneeID != nil && *t.assigneeID == userID {
		return true
	}

	return false
}
