package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"triago/internal/domain/audit"
	"triago/internal/infrastructure/persistence/mappers"
	"triago/internal/infrastructure/persistence/models"
	db "triago/internal/shared/db"
)

// AuditEntryRepository is append-only: entries are never updated or deleted.
type AuditEntryRepository struct {
	db     *gorm.DB
	mapper mappers.AuditEntryMapper
}

func NewAuditEntryRepository(db *gorm.DB) *AuditEntryRepository {
	return &AuditEntryRepository{
		db:     db,
		mapper: mappers.NewAuditEntryMapper(),
	}
}

var _ audit.Repository = (*AuditEntryRepository)(nil)

func (r *AuditEntryRepository) Append(ctx context.Context, e *audit.Entry) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	if err := e.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *AuditEntryRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*audit.Entry, error) {
	var entryModels []models.AuditEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return r.toDomainSlice(entryModels)
}

func (r *AuditEntryRepository) ListByTrace(ctx context.Context, traceID string) ([]*audit.Entry, error) {
	var entryModels []models.AuditEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("trace_id = ?", traceID).
		Order("created_at ASC, id ASC").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries by trace: %w", err)
	}

	return r.toDomainSlice(entryModels)
}

func (r *AuditEntryRepository) toDomainSlice(entryModels []models.AuditEntryModel) ([]*audit.Entry, error) {
	entries := make([]*audit.Entry, len(entryModels))
	for i, model := range entryModels {
		e, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}
