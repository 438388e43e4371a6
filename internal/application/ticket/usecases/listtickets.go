package usecases

import (
	"context"

	"triago/internal/domain/ticket"
	vo "triago/internal/domain/ticket/valueobjects"
	"triago/internal/shared/authorization"
	"triago/internal/shared/errors"
	"triago/internal/shared/logger"
)

type ListTicketsQuery struct {
	UserID     uint
	Role       string
	Status     string
	Category   string
	AssignedMe bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type ListTicketsResult struct {
	Tickets []*ticket.Ticket
	Total   int64
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

// ListTicketsUseCase lists tickets with filters. Regular users only ever
// see their own tickets regardless of the filter they send.
type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter := ticket.Filter{
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}

	if query.Status != "" {
		status := vo.TicketStatus(query.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("invalid status: " + query.Status)
		}
		filter.Status = &status
	}
	if query.Category != "" {
		category := vo.Category(query.Category)
		if !category.IsValid() {
			return nil, errors.NewValidationError("invalid category: " + query.Category)
		}
		filter.Category = &category
	}

	if !authorization.ParseUserRole(query.Role).IsAgent() {
		creatorID := query.UserID
		filter.CreatorID = &creatorID
	} else if query.AssignedMe {
		assigneeID := query.UserID
		filter.AssigneeID = &assigneeID
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	return &ListTicketsResult{Tickets: tickets, Total: total}, nil
}
