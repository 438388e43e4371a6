// Package audit provides the append-only record of every triage and review
// step. Entries sharing a trace identifier belong to one logical operation;
// the timeline a UI shows is grouped by that identifier. Entries are never
// mutated or deleted.
package audit

import (
	"fmt"
	"time"
)

type Actor string

const (
	ActorSystem Actor = "system"
	ActorAgent  Actor = "agent"
	ActorUser   Actor = "user"
)

func (a Actor) IsValid() bool {
	return a == ActorSystem || a == ActorAgent || a == ActorUser
}

func (a Actor) String() string {
	return string(a)
}

// Action tags for the triage and review workflows. The metadata payload is
// an open key/value bag; the variety per action is intentional.
const (
	ActionTriageEnqueued            = "TRIAGE_ENQUEUED"
	ActionTriageRetry               = "TRIAGE_RETRY"
	ActionTriageFailed              = "TRIAGE_FAILED"
	ActionAgentResponseReceived     = "AGENT_RESPONSE_RECEIVED"
	ActionRequiresHumanReview       = "REQUIRES_HUMAN_REVIEW"
	ActionAutoResolvedWithoutReply  = "TICKET_AUTO_RESOLVED_WITHOUT_REPLY"
	ActionTriageCompleted           = "TRIAGE_COMPLETED"
	ActionAgentDraftAccepted        = "AGENT_DRAFT_ACCEPTED"
	ActionAgentDraftEditedAccepted  = "AGENT_DRAFT_EDITED_AND_ACCEPTED"
	ActionAgentDraftRejected        = "AGENT_DRAFT_REJECTED"
	ActionTicketResolvedWithReply   = "TICKET_RESOLVED_WITH_REPLY"
	ActionTicketClosed              = "TICKET_CLOSED"
	ActionTicketReopened            = "TICKET_REOPENED"
)

type Entry struct {
	id        uint
	ticketID  uint
	traceID   string
	actor     Actor
	actorID   *uint
	action    string
	metadata  map[string]interface{}
	createdAt time.Time
}

func NewEntry(
	ticketID uint,
	traceID string,
	actor Actor,
	actorID *uint,
	action string,
	metadata map[string]interface{},
) (*Entry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if traceID == "" {
		return nil, fmt.Errorf("trace ID is required")
	}
	if !actor.IsValid() {
		return nil, fmt.Errorf("invalid actor: %s", actor)
	}
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return &Entry{
		ticketID:  ticketID,
		traceID:   traceID,
		actor:     actor,
		actorID:   actorID,
		action:    action,
		metadata:  metadata,
		createdAt: time.Now(),
	}, nil
}

func ReconstructEntry(
	id uint,
	ticketID uint,
	traceID string,
	actor Actor,
	actorID *uint,
	action string,
	metadata map[string]interface{},
	createdAt time.Time,
) (*Entry, error) {
	if id == 0 {
		return nil, fmt.Errorf("entry ID cannot be zero")
	}
	if !actor.IsValid() {
		return nil, fmt.Errorf("invalid actor: %s", actor)
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return &Entry{
		id:        id,
		ticketID:  ticketID,
		traceID:   traceID,
		actor:     actor,
		actorID:   actorID,
		action:    action,
		metadata:  metadata,
		createdAt: createdAt,
	}, nil
}

func (e *Entry) ID() uint {
	return e.id
}

func (e *Entry) TicketID() uint {
	return e.ticketID
}

func (e *Entry) TraceID() string {
	return e.traceID
}

func (e *Entry) Actor() Actor {
	return e.actor
}

func (e *Entry) ActorID() *uint {
	return e.actorID
}

func (e *Entry) Action() string {
	return e.action
}

func (e *Entry) Metadata() map[string]interface{} {
	out := make(map[string]interface{}, len(e.metadata))
	for k, v := range e.metadata {
		out[k] = v
	}
	return out
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("entry ID cannot be zero")
	}
	e.id = id
	return nil
}
