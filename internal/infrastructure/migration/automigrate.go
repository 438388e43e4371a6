package migration

import (
	"triago/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TicketModel{},
		&models.AgentSuggestionModel{},
		&models.ReviewRecordModel{},
		&models.AuditEntryModel{},
		&models.ReplyModel{},
		&models.KBArticleModel{},
		&models.NotificationModel{},
		&models.TriageSettingsModel{},
	}
}
