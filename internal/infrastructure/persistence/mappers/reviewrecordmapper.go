package mappers

import (
	"time"

	"triago/internal/domain/review"
	"triago/internal/infrastructure/persistence/models"
)

type ReviewRecordMapper interface {
	ToModel(r *review.Record) *models.ReviewRecordModel
	ToDomain(model *models.ReviewRecordModel) (*review.Record, error)
}

type ReviewRecordMapperImpl struct{}

func NewReviewRecordMapper() ReviewRecordMapper {
	return &ReviewRecordMapperImpl{}
}

func (m *ReviewRecordMapperImpl) ToModel(r *review.Record) *models.ReviewRecordModel {
	facets := r.Facets()
	model := &models.ReviewRecordModel{
		ID:          r.ID(),
		TicketID:    r.TicketID(),
		AgentID:     r.AgentID(),
		AgentName:   r.AgentName(),
		Action:      r.Action().String(),
		FinalReply:  r.FinalReply(),
		Confidence:  r.Confidence(),
		SendNow:     r.SendImmediately(),
		CloseTicket: r.CloseTicket(),
		Accepted:    facets.Accepted,
		Rejected:    facets.Rejected,
		Closed:      facets.Closed,
		TraceID:     r.TraceID(),
		Feedback:    r.Feedback(),
		AssignedAt:  r.AssignedAt().UnixMilli(),
		CreatedAt:   r.CreatedAt().UnixMilli(),
		UpdatedAt:   r.UpdatedAt().UnixMilli(),
	}

	if r.RespondedAt() != nil {
		responded := r.RespondedAt().UnixMilli()
		model.RespondedAt = &responded
	}

	return model
}

func (m *ReviewRecordMapperImpl) ToDomain(model *models.ReviewRecordModel) (*review.Record, error) {
	var respondedAt *time.Time
	if model.RespondedAt != nil {
		t := time.UnixMilli(*model.RespondedAt)
		respondedAt = &t
	}

	return review.ReconstructRecord(
		model.ID,
		model.TicketID,
		model.AgentID,
		model.AgentName,
		review.Action(model.Action),
		model.FinalReply,
		model.Confidence,
		model.SendNow,
		model.CloseTicket,
		review.Facets{
			Accepted: model.Accepted,
			Rejected: model.Rejected,
			Closed:   model.Closed,
		},
		model.TraceID,
		model.Feedback,
		time.UnixMilli(model.AssignedAt),
		respondedAt,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
	)
}
