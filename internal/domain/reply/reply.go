// Package reply holds customer-visible replies on a ticket. A reply is
// created when an agent dispatches an accepted or edited draft; rejected
// drafts never produce one.
package reply

import (
	"fmt"
	"time"
)

type AuthorType string

const (
	AuthorAgent  AuthorType = "agent"
	AuthorSystem AuthorType = "system"
	AuthorUser   AuthorType = "user"
)

func (a AuthorType) IsValid() bool {
	return a == AuthorAgent || a == AuthorSystem || a == AuthorUser
}

type Reply struct {
	id         uint
	ticketID   uint
	authorID   uint
	authorType AuthorType
	body       string
	citations  []string
	createdAt  time.Time
}

func NewReply(
	ticketID uint,
	authorID uint,
	authorType AuthorType,
	body string,
	citations []string,
) (*Reply, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !authorType.IsValid() {
		return nil, fmt.Errorf("invalid author type: %s", authorType)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("reply body is required")
	}
	if citations == nil {
		citations = []string{}
	}

	return &Reply{
		ticketID:   ticketID,
		authorID:   authorID,
		authorType: authorType,
		body:       body,
		citations:  citations,
		createdAt:  time.Now(),
	}, nil
}

func ReconstructReply(
	id uint,
	ticketID uint,
	authorID uint,
	authorType AuthorType,
	body string,
	citations []string,
	createdAt time.Time,
) (*Reply, error) {
	if id == 0 {
		return nil, fmt.Errorf("reply ID cannot be zero")
	}
	if !authorType.IsValid() {
		return nil, fmt.Errorf("invalid author type: %s", authorType)
	}
	if citations == nil {
		citations = []string{}
	}

	return &Reply{
		id:         id,
		ticketID:   ticketID,
		authorID:   authorID,
		authorType: authorType,
		body:       body,
		citations:  citations,
		createdAt:  createdAt,
	}, nil
}

func (r *Reply) ID() uint {
	return r.id
}

func (r *Reply) TicketID() uint {
	return r.ticketID
}

func (r *Reply) AuthorID() uint {
	return r.authorID
}

func (r *Reply) AuthorType() AuthorType {
	return r.authorType
}

func (r *Reply) Body() string {
	return r.body
}

func (r *Reply) Citations() []string {
	out := make([]string, len(r.citations))
	copy(out, r.citations)
	return out
}

func (r *Reply) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Reply) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("reply ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("reply ID cannot be zero")
	}
	r.id = id
	return nil
}
