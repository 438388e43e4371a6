package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"triago/internal/domain/setting"
	"triago/internal/infrastructure/persistence/mappers"
	"triago/internal/infrastructure/persistence/models"
	db "triago/internal/shared/db"
)

// SettingsRepository persists the singleton triage settings document.
type SettingsRepository struct {
	db     *gorm.DB
	mapper mappers.SettingsMapper
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		mapper: mappers.NewSettingsMapper(),
	}
}

var _ setting.Repository = (*SettingsRepository)(nil)

func (r *SettingsRepository) GetOrCreateDefault(ctx context.Context, defaults *setting.TriageSettings) (*setting.TriageSettings, error) {
	var model models.TriageSettingsModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Order("id ASC").First(&model).Error
	if err == nil {
		return r.mapper.ToDomain(&model)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to load triage settings: %w", err)
	}

	created := r.mapper.ToModel(defaults)
	created.ID = 0
	if err := tx.Create(created).Error; err != nil {
		// A concurrent request may have created the row first.
		if retryErr := tx.Order("id ASC").First(&model).Error; retryErr == nil {
			return r.mapper.ToDomain(&model)
		}
		return nil, fmt.Errorf("failed to create default triage settings: %w", err)
	}

	// Map the created row back instead of mutating the caller's defaults,
	// which are a shared long-lived aggregate.
	return r.mapper.ToDomain(created)
}

func (r *SettingsRepository) Update(ctx context.Context, s *setting.TriageSettings) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TriageSettingsModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"auto_close_enabled":   model.AutoCloseEnabled,
			"confidence_threshold": model.ConfidenceThreshold,
			"sla_hours":            model.SLAHours,
			"updated_by":           model.UpdatedBy,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update triage settings: %w", result.Error)
	}

	return nil
}
