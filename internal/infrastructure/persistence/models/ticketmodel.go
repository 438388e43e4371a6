package models

type TicketModel struct {
	ID           uint   `gorm:"primaryKey"`
	Number       string `gorm:"uniqueIndex;size:50;not null"`
	Title        string `gorm:"size:200;not null"`
	Description  string `gorm:"type:text;not null"`
	Category     string `gorm:"size:50;not null;index"`
	Status       string `gorm:"size:20;not null;index"`
	Attachments  string `gorm:"type:json"`
	CreatorID    uint   `gorm:"not null;index"`
	AssigneeID   *uint  `gorm:"index"`
	SuggestionID *uint  `gorm:"index"`
	Version      int    `gorm:"not null;default:1"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
	ResolvedAt   *int64
	ClosedAt     *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}
