package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen         TicketStatus = "open"
	StatusTriaged      TicketStatus = "triaged"
	StatusWaitingHuman TicketStatus = "waiting_human"
	StatusResolved     TicketStatus = "resolved"
	StatusClosed       TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:         true,
	StatusTriaged:      true,
	StatusWaitingHuman: true,
	StatusResolved:     true,
	StatusClosed:       true,
}

// ticketStatusTransitions encodes the triage/review state machine.
// Close is allowed from any non-closed status; reopen only from closed
// (and resolved, which covers auto-closed tickets) back to waiting_human.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen: {
		StatusTriaged,
		StatusWaitingHuman,
		StatusResolved,
		StatusClosed,
	},
	StatusWaitingHuman: {
		StatusTriaged,
		StatusOpen,
		StatusResolved,
		StatusClosed,
	},
	StatusTriaged: {
		StatusOpen,
		StatusResolved,
		StatusClosed,
	},
	StatusResolved: {
		StatusClosed,
		StatusWaitingHuman,
	},
	StatusClosed: {
		StatusWaitingHuman,
	},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	allowed, ok := ticketStatusTransitions[ts]
	if !ok {
		return false
	}

	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsTriaged() bool {
	return ts == StatusTriaged
}

func (ts TicketStatus) IsWaitingHuman() bool {
	return ts == StatusWaitingHuman
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// IsReviewable reports whether an agent may act on the ticket's pending
// suggestion. Resolved is included so auto-closed drafts can still be
// dispatched or overridden by a human.
func (ts TicketStatus) IsReviewable() bool {
	return ts == StatusWaitingHuman || ts == StatusResolved
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
