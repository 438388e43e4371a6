package models

type TriageSettingsModel struct {
	ID                  uint    `gorm:"primaryKey"`
	AutoCloseEnabled    bool    `gorm:"not null;default:false"`
	ConfidenceThreshold float64 `gorm:"not null"`
	SLAHours            int     `gorm:"not null"`
	UpdatedBy           uint
	Version             int   `gorm:"not null;default:1"`
	CreatedAt           int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt           int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (TriageSettingsModel) TableName() string {
	return "triage_settings"
}
