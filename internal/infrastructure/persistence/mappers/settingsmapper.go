package mappers

import (
	"time"

	"triago/internal/domain/setting"
	"triago/internal/infrastructure/persistence/models"
)

type SettingsMapper interface {
	ToModel(s *setting.TriageSettings) *models.TriageSettingsModel
	ToDomain(model *models.TriageSettingsModel) (*setting.TriageSettings, error)
}

type SettingsMapperImpl struct{}

func NewSettingsMapper() SettingsMapper {
	return &SettingsMapperImpl{}
}

func (m *SettingsMapperImpl) ToModel(s *setting.TriageSettings) *models.TriageSettingsModel {
	return &models.TriageSettingsModel{
		ID:                  s.ID(),
		AutoCloseEnabled:    s.AutoCloseEnabled(),
		ConfidenceThreshold: s.ConfidenceThreshold(),
		SLAHours:            s.SLAHours(),
		UpdatedBy:           s.UpdatedBy(),
		Version:             s.Version(),
		CreatedAt:           s.CreatedAt().UnixMilli(),
		UpdatedAt:           s.UpdatedAt().UnixMilli(),
	}
}

func (m *SettingsMapperImpl) ToDomain(model *models.TriageSettingsModel) (*setting.TriageSettings, error) {
	return setting.ReconstructTriageSettings(
		model.ID,
		model.AutoCloseEnabled,
		model.ConfidenceThreshold,
		model.SLAHours,
		model.UpdatedBy,
		model.Version,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
	)
}
