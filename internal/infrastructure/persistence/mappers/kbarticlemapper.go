package mappers

import (
	"encoding/json"
	"time"

	"triago/internal/domain/kb"
	"triago/internal/infrastructure/persistence/models"
)

type KBArticleMapper interface {
	ToDomain(model *models.KBArticleModel) (*kb.Article, error)
}

type KBArticleMapperImpl struct{}

func NewKBArticleMapper() KBArticleMapper {
	return &KBArticleMapperImpl{}
}

func (m *KBArticleMapperImpl) ToDomain(model *models.KBArticleModel) (*kb.Article, error) {
	var tags []string
	if model.Tags != "" {
		_ = json.Unmarshal([]byte(model.Tags), &tags)
	}

	return kb.ReconstructArticle(
		model.ID,
		model.Slug,
		model.Title,
		model.Body,
		tags,
		model.Published,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
	)
}
