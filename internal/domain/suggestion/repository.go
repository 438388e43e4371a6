package suggestion

import "context"

type Repository interface {
	Save(ctx context.Context, s *AgentSuggestion) error
	Update(ctx context.Context, s *AgentSuggestion) error
	GetByID(ctx context.Context, id uint) (*AgentSuggestion, error)
	GetByTicketID(ctx context.Context, ticketID uint) (*AgentSuggestion, error)

	// MarkReviewed atomically records the review outcome. The update only
	// applies when the suggestion is not yet reviewed, or was reviewed by
	// the same reviewer (a follow-up edit). Returns false when another
	// reviewer already holds the suggestion, without modifying anything.
	MarkReviewed(ctx context.Context, suggestionID uint, result ReviewResult, reviewerID uint) (bool, error)
}
