package models

type AgentSuggestionModel struct {
	ID                 uint    `gorm:"primaryKey"`
	TicketID           uint    `gorm:"not null;index"`
	PredictedCategory  string  `gorm:"size:50;not null"`
	Citations          string  `gorm:"type:json"`
	DraftReply         string  `gorm:"type:text"`
	Confidence         float64 `gorm:"not null"`
	OriginalConfidence float64 `gorm:"not null"`
	AutoClosed         bool    `gorm:"not null;default:false"`
	ModelProvider      string  `gorm:"size:50"`
	ModelName          string  `gorm:"size:100"`
	PromptVersion      string  `gorm:"size:50"`
	LatencyMs          int64
	Attempts           int
	Reviewed           bool   `gorm:"not null;default:false;index"`
	ReviewResult       string `gorm:"size:20"`
	ReviewerID         *uint  `gorm:"index"`
	ReviewedAt         *int64
	CreatedAt          int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt          int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (AgentSuggestionModel) TableName() string {
	return "agent_suggestions"
}
