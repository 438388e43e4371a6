package models

type AuditEntryModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	TraceID   string `gorm:"size:64;not null;index"`
	Actor     string `gorm:"size:20;not null"`
	ActorID   *uint
	Action    string `gorm:"size:64;not null;index"`
	Metadata  string `gorm:"type:json"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (AuditEntryModel) TableName() string {
	return "audit_entries"
}
