package routes

import (
	"github.com/gin-gonic/gin"

	notificationhandlers "triago/internal/interfaces/http/handlers/notification"
	"triago/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *notificationhandlers.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("",
			config.NotificationHandler.ListNotifications)
		notifications.POST("/:id/read",
			config.NotificationHandler.MarkRead)
	}
}
