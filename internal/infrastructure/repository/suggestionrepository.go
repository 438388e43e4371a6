package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"triago/internal/domain/suggestion"
	"triago/internal/infrastructure/persistence/mappers"
	"triago/internal/infrastructure/persistence/models"
	"triago/internal/shared/biztime"
	db "triago/internal/shared/db"
)

type SuggestionRepository struct {
	db     *gorm.DB
	mapper mappers.SuggestionMapper
}

func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{
		db:     db,
		mapper: mappers.NewSuggestionMapper(),
	}
}

var _ suggestion.Repository = (*SuggestionRepository)(nil)

func (r *SuggestionRepository) Save(ctx context.Context, s *suggestion.AgentSuggestion) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save suggestion: %w", err)
	}

	if err := s.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *SuggestionRepository) Update(ctx context.Context, s *suggestion.AgentSuggestion) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.AgentSuggestionModel{}).
		Where("id = ?", model.ID).
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update suggestion: %w", result.Error)
	}

	return nil
}

func (r *SuggestionRepository) GetByID(ctx context.Context, id uint) (*suggestion.AgentSuggestion, error) {
	var model models.AgentSuggestionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("suggestion not found")
		}
		return nil, fmt.Errorf("failed to find suggestion: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *SuggestionRepository) GetByTicketID(ctx context.Context, ticketID uint) (*suggestion.AgentSuggestion, error) {
	var model models.AgentSuggestionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("suggestion not found")
		}
		return nil, fmt.Errorf("failed to find suggestion: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// MarkReviewed performs the review claim as a single conditional UPDATE. The
// row is only touched when it is unreviewed or already held by the same
// reviewer, so a race between two agents resolves to one winner without a
// transaction.
func (r *SuggestionRepository) MarkReviewed(
	ctx context.Context,
	suggestionID uint,
	result suggestion.ReviewResult,
	reviewerID uint,
) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	now := biztime.NowUTC().UnixMilli()

	res := tx.
		Model(&models.AgentSuggestionModel{}).
		Where("id = ? AND (reviewed = ? OR reviewer_id = ?)", suggestionID, false, reviewerID).
		Updates(map[string]interface{}{
			"reviewed":      true,
			"review_result": string(result),
			"reviewer_id":   reviewerID,
			"reviewed_at":   now,
			"updated_at":    now,
		})

	if res.Error != nil {
		return false, fmt.Errorf("failed to mark suggestion reviewed: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}
