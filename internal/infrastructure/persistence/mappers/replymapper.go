package mappers

import (
	"encoding/json"
	"time"

	"triago/internal/domain/reply"
	"triago/internal/infrastructure/persistence/models"
)

type ReplyMapper interface {
	ToModel(r *reply.Reply) *models.ReplyModel
	ToDomain(model *models.ReplyModel) (*reply.Reply, error)
}

type ReplyMapperImpl struct{}

func NewReplyMapper() ReplyMapper {
	return &ReplyMapperImpl{}
}

func (m *ReplyMapperImpl) ToModel(r *reply.Reply) *models.ReplyModel {
	model := &models.ReplyModel{
		ID:         r.ID(),
		TicketID:   r.TicketID(),
		AuthorID:   r.AuthorID(),
		AuthorType: string(r.AuthorType()),
		Body:       r.Body(),
		CreatedAt:  r.CreatedAt().UnixMilli(),
	}

	if len(r.Citations()) > 0 {
		citationsJSON, _ := json.Marshal(r.Citations())
		model.Citations = string(citationsJSON)
	}

	return model
}

func (m *ReplyMapperImpl) ToDomain(model *models.ReplyModel) (*reply.Reply, error) {
	var citations []string
	if model.Citations != "" {
		_ = json.Unmarshal([]byte(model.Citations), &citations)
	}

	return reply.ReconstructReply(
		model.ID,
		model.TicketID,
		model.AuthorID,
		reply.AuthorType(model.AuthorType),
		model.Body,
		citations,
		time.UnixMilli(model.CreatedAt),
	)
}
