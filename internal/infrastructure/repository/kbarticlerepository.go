package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"triago/internal/domain/kb"
	"triago/internal/infrastructure/persistence/mappers"
	"triago/internal/infrastructure/persistence/models"
	db "triago/internal/shared/db"
)

type KBArticleRepository struct {
	db     *gorm.DB
	mapper mappers.KBArticleMapper
}

func NewKBArticleRepository(db *gorm.DB) *KBArticleRepository {
	return &KBArticleRepository{
		db:     db,
		mapper: mappers.NewKBArticleMapper(),
	}
}

var _ kb.Repository = (*KBArticleRepository)(nil)

func (r *KBArticleRepository) ListPublished(ctx context.Context) ([]*kb.Article, error) {
	var articleModels []models.KBArticleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("published = ?", true).
		Order("id ASC").
		Find(&articleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list published articles: %w", err)
	}

	articles := make([]*kb.Article, len(articleModels))
	for i, model := range articleModels {
		a, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		articles[i] = a
	}

	return articles, nil
}
