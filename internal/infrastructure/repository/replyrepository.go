package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"triago/internal/domain/reply"
	"triago/internal/infrastructure/persistence/mappers"
	"triago/internal/infrastructure/persistence/models"
	db "triago/internal/shared/db"
)

type ReplyRepository struct {
	db     *gorm.DB
	mapper mappers.ReplyMapper
}

func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{
		db:     db,
		mapper: mappers.NewReplyMapper(),
	}
}

var _ reply.Repository = (*ReplyRepository)(nil)

func (r *ReplyRepository) Save(ctx context.Context, rep *reply.Reply) error {
	model := r.mapper.ToModel(rep)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save reply: %w", err)
	}

	if err := rep.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *ReplyRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*reply.Reply, error) {
	var replyModels []models.ReplyModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&replyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	replies := make([]*reply.Reply, len(replyModels))
	for i, model := range replyModels {
		rep, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		replies[i] = rep
	}

	return replies, nil
}
