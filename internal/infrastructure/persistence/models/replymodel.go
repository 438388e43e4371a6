package models

type ReplyModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	AuthorID   uint   `gorm:"not null;index"`
	AuthorType string `gorm:"size:20;not null"`
	Body       string `gorm:"type:text;not null"`
	Citations  string `gorm:"type:json"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (ReplyModel) TableName() string {
	return "ticket_replies"
}
