package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"triago/internal/domain/review"
	"triago/internal/infrastructure/persistence/mappers"
	"triago/internal/infrastructure/persistence/models"
	db "triago/internal/shared/db"
)

type ReviewRecordRepository struct {
	db     *gorm.DB
	mapper mappers.ReviewRecordMapper
}

func NewReviewRecordRepository(db *gorm.DB) *ReviewRecordRepository {
	return &ReviewRecordRepository{
		db:     db,
		mapper: mappers.NewReviewRecordMapper(),
	}
}

var _ review.Repository = (*ReviewRecordRepository)(nil)

func (r *ReviewRecordRepository) Save(ctx context.Context, rec *review.Record) error {
	model := r.mapper.ToModel(rec)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save review record: %w", err)
	}

	if err := rec.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *ReviewRecordRepository) Update(ctx context.Context, rec *review.Record) error {
	model := r.mapper.ToModel(rec)
	tx := db.GetTxFromContext(ctx, r.db)

	// Boolean facets must be written even when false, so use a column map
	// rather than struct updates (GORM skips zero values on structs).
	result := tx.
		Model(&models.ReviewRecordModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"action":       model.Action,
			"final_reply":  model.FinalReply,
			"send_now":     model.SendNow,
			"close_ticket": model.CloseTicket,
			"accepted":     model.Accepted,
			"rejected":     model.Rejected,
			"closed":       model.Closed,
			"trace_id":     model.TraceID,
			"feedback":     model.Feedback,
			"responded_at": model.RespondedAt,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update review record: %w", result.Error)
	}

	return nil
}

func (r *ReviewRecordRepository) GetByTicketAndAgent(ctx context.Context, ticketID, agentID uint) (*review.Record, error) {
	var model models.ReviewRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ? AND agent_id = ?", ticketID, agentID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review record not found")
		}
		return nil, fmt.Errorf("failed to find review record: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ReviewRecordRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*review.Record, error) {
	var recordModels []models.ReviewRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list review records: %w", err)
	}

	return r.toDomainSlice(recordModels)
}

func (r *ReviewRecordRepository) ListPending(ctx context.Context, limit int) ([]*review.Record, error) {
	var recordModels []models.ReviewRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Where("accepted = ? AND rejected = ?", false, false).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending review records: %w", err)
	}

	return r.toDomainSlice(recordModels)
}

func (r *ReviewRecordRepository) toDomainSlice(recordModels []models.ReviewRecordModel) ([]*review.Record, error) {
	records := make([]*review.Record, len(recordModels))
	for i, model := range recordModels {
		rec, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}
