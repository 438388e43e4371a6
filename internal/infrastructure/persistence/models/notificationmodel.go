package models

type NotificationModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_user_read"`
	Type      string `gorm:"size:50;not null"`
	Title     string `gorm:"size:200;not null"`
	Content   string `gorm:"type:text"`
	TicketID  *uint  `gorm:"index"`
	Read      bool   `gorm:"not null;default:false;index:idx_user_read"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
