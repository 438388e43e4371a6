package mappers

import (
	"encoding/json"
	"time"

	"triago/internal/domain/audit"
	"triago/internal/infrastructure/persistence/models"
)

type AuditEntryMapper interface {
	ToModel(e *audit.Entry) *models.AuditEntryModel
	ToDomain(model *models.AuditEntryModel) (*audit.Entry, error)
}

type AuditEntryMapperImpl struct{}

func NewAuditEntryMapper() AuditEntryMapper {
	return &AuditEntryMapperImpl{}
}

func (m *AuditEntryMapperImpl) ToModel(e *audit.Entry) *models.AuditEntryModel {
	model := &models.AuditEntryModel{
		ID:        e.ID(),
		TicketID:  e.TicketID(),
		TraceID:   e.TraceID(),
		Actor:     e.Actor().String(),
		ActorID:   e.ActorID(),
		Action:    e.Action(),
		CreatedAt: e.CreatedAt().UnixMilli(),
	}

	if len(e.Metadata()) > 0 {
		metaJSON, _ := json.Marshal(e.Metadata())
		model.Metadata = string(metaJSON)
	}

	return model
}

func (m *AuditEntryMapperImpl) ToDomain(model *models.AuditEntryModel) (*audit.Entry, error) {
	var metadata map[string]interface{}
	if model.Metadata != "" {
		_ = json.Unmarshal([]byte(model.Metadata), &metadata)
	}

	return audit.ReconstructEntry(
		model.ID,
		model.TicketID,
		model.TraceID,
		audit.Actor(model.Actor),
		model.ActorID,
		model.Action,
		metadata,
		time.UnixMilli(model.CreatedAt),
	)
}
