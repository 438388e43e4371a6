package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "triago/internal/interfaces/http/handlers/ticket"
	"triago/internal/interfaces/http/middleware"
	"triago/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// Collection operations
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)

		// Review workflow endpoints (agent role); registered before the
		// generic /:id route to avoid conflicts
		tickets.POST("/:id/review-draft",
			authorization.RequireAgent(),
			config.TicketHandler.ReviewDraft)
		tickets.POST("/:id/close",
			authorization.RequireAgent(),
			config.TicketHandler.CloseTicket)
		tickets.POST("/:id/reopen",
			config.TicketHandler.ReopenTicket)
		tickets.GET("/:id/audit",
			authorization.RequireAgent(),
			config.TicketHandler.GetAuditTrail)

		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
	}
}
