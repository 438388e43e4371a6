package models

type KBArticleModel struct {
	ID        uint   `gorm:"primaryKey"`
	Slug      string `gorm:"uniqueIndex;size:100;not null"`
	Title     string `gorm:"size:200;not null"`
	Body      string `gorm:"type:text;not null"`
	Tags      string `gorm:"type:json"`
	Published bool   `gorm:"not null;default:false;index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (KBArticleModel) TableName() string {
	return "kb_articles"
}
