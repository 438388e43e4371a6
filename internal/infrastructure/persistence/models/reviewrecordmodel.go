package models

type ReviewRecordModel struct {
	ID          uint    `gorm:"primaryKey"`
	TicketID    uint    `gorm:"not null;uniqueIndex:idx_review_ticket_agent"`
	AgentID     uint    `gorm:"not null;uniqueIndex:idx_review_ticket_agent"`
	AgentName   string  `gorm:"size:100"`
	Action      string  `gorm:"size:20;not null"`
	FinalReply  string  `gorm:"type:text"`
	Confidence  float64 `gorm:"not null"`
	SendNow     bool    `gorm:"not null;default:false"`
	CloseTicket bool    `gorm:"not null;default:false"`
	Accepted    bool    `gorm:"not null;default:false;index"`
	Rejected    bool    `gorm:"not null;default:false"`
	Closed      bool    `gorm:"not null;default:false"`
	TraceID     string  `gorm:"size:64;not null;index"`
	Feedback    string  `gorm:"type:text"`
	AssignedAt  int64   `gorm:"not null"`
	RespondedAt *int64
	CreatedAt   int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (ReviewRecordModel) TableName() string {
	return "review_records"
}
