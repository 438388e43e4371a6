// Package review holds the per-agent bookkeeping record of a draft review:
// which action the agent took, the reply text that will actually be sent,
// and the send/close intents. One record exists per (ticket, agent) pair
// and is updated in place by follow-up actions.
package review

import (
	"fmt"
	"time"
)

type Action string

const (
	ActionAccept Action = "accept"
	ActionEdit   Action = "edit"
	ActionReject Action = "reject"
)

func (a Action) IsValid() bool {
	return a == ActionAccept || a == ActionEdit || a == ActionReject
}

func (a Action) String() string {
	return string(a)
}

// Facets models the record status as independent boolean flags rather than
// one mutable tag list: a record can be accepted and closed at once.
type Facets struct {
	Accepted bool
	Rejected bool
	Closed   bool
}

// Pending reports whether no terminal facet has been set yet.
func (f Facets) Pending() bool {
	return !f.Accepted && !f.Rejected
}

type Record struct {
	id          uint
	ticketID    uint
	agentID     uint
	agentName   string
	action      Action
	finalReply  string
	confidence  float64
	sendNow     bool
	closeTicket bool
	facets      Facets
	traceID     string
	feedback    string
	assignedAt  time.Time
	respondedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRecord(
	ticketID uint,
	agentID uint,
	agentName string,
	action Action,
	finalReply string,
	confidence float64,
	sendNow bool,
	closeTicket bool,
	traceID string,
	feedback string,
) (*Record, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if agentID == 0 {
		return nil, fmt.Errorf("agent ID is required")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid review action: %s", action)
	}
	if traceID == "" {
		return nil, fmt.Errorf("trace ID is required")
	}

	now := time.Now()
	r := &Record{
		ticketID:    ticketID,
		agentID:     agentID,
		agentName:   agentName,
		action:      action,
		finalReply:  finalReply,
		confidence:  confidence,
		sendNow:     sendNow,
		closeTicket: closeTicket,
		traceID:     traceID,
		feedback:    feedback,
		assignedAt:  now,
		createdAt:   now,
		updatedAt:   now,
	}
	r.applyActionFacets(action, closeTicket)
	responded := now
	r.respondedAt = &responded

	return r, nil
}

func ReconstructRecord(
	id uint,
	ticketID uint,
	agentID uint,
	agentName string,
	action Action,
	finalReply string,
	confidence float64,
	sendNow bool,
	closeTicket bool,
	facets Facets,
	traceID string,
	feedback string,
	assignedAt time.Time,
	respondedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Record, error) {
	if id == 0 {
		return nil, fmt.Errorf("record ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if agentID == 0 {
		return nil, fmt.Errorf("agent ID is required")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid review action: %s", action)
	}

	return &Record{
		id:          id,
		ticketID:    ticketID,
		agentID:     agentID,
		agentName:   agentName,
		action:      action,
		finalReply:  finalReply,
		confidence:  confidence,
		sendNow:     sendNow,
		closeTicket: closeTicket,
		facets:      facets,
		traceID:     traceID,
		feedback:    feedback,
		assignedAt:  assignedAt,
		respondedAt: respondedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (r *Record) ID() uint {
	return r.id
}

func (r *Record) TicketID() uint {
	return r.ticketID
}

func (r *Record) AgentID() uint {
	return r.agentID
}

func (r *Record) AgentName() string {
	return r.agentName
}

func (r *Record) Action() Action {
	return r.action
}

func (r *Record) FinalReply() string {
	return r.finalReply
}

func (r *Record) Confidence() float64 {
	return r.confidence
}

func (r *Record) SendImmediately() bool {
	return r.sendNow
}

func (r *Record) CloseTicket() bool {
	return r.closeTicket
}

func (r *Record) Facets() Facets {
	return r.facets
}

func (r *Record) TraceID() string {
	return r.traceID
}

func (r *Record) Feedback() string {
	return r.feedback
}

func (r *Record) AssignedAt() time.Time {
	return r.assignedAt
}

func (r *Record) RespondedAt() *time.Time {
	return r.respondedAt
}

func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Record) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Record) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("record ID cannot be zero")
	}
	r.id = id
	return nil
}

// ApplyFollowUp overwrites the record with a subsequent action by the same
// agent, e.g. an edit after an earlier accept. The reply text, intents, and
// status facets are replaced; the trace identifier moves to the new
// operation's trace.
func (r *Record) ApplyFollowUp(
	action Action,
	finalReply string,
	sendNow bool,
	closeTicket bool,
	traceID string,
	feedback string,
) error {
	if !action.IsValid() {
		return fmt.Errorf("invalid review action: %s", action)
	}
	if traceID == "" {
		return fmt.Errorf("trace ID is required")
	}

	now := time.Now()
	r.action = action
	r.finalReply = finalReply
	r.sendNow = sendNow
	r.closeTicket = closeTicket
	r.traceID = traceID
	r.feedback = feedback
	r.facets = Facets{}
	r.applyActionFacets(action, closeTicket)
	r.respondedAt = &now
	r.updatedAt = now

	return nil
}

// MarkClosed flags the record as belonging to a closed ticket.
func (r *Record) MarkClosed() {
	r.facets.Closed = true
	r.updatedAt = time.Now()
}

func (r *Record) applyActionFacets(action Action, closeTicket bool) {
	switch action {
	case ActionAccept, ActionEdit:
		r.facets.Accepted = true
		if closeTicket {
			r.facets.Closed = true
		}
	case ActionReject:
		r.facets.Rejected = true
	}
}
