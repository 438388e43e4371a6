package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	appnotification "triago/internal/application/notification"
	notificationusecases "triago/internal/application/notification/usecases"
	reviewusecases "triago/internal/application/review/usecases"
	ticketusecases "triago/internal/application/ticket/usecases"
	triageusecases "triago/internal/application/triage/usecases"
	"triago/internal/domain/setting"
	"triago/internal/infrastructure/auth"
	"triago/internal/infrastructure/classifier"
	"triago/internal/infrastructure/config"
	"triago/internal/infrastructure/repository"
	notificationhandlers "triago/internal/interfaces/http/handlers/notification"
	tickethandlers "triago/internal/interfaces/http/handlers/ticket"
	"triago/internal/interfaces/http/middleware"
	"triago/internal/interfaces/http/routes"
	"triago/internal/shared/logger"
	"triago/internal/shared/services/markdown"
)

// Router wires repositories, use cases and handlers onto a Gin engine.
type Router struct {
	engine              *gin.Engine
	ticketHandler       *tickethandlers.TicketHandler
	notificationHandler *notificationhandlers.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
	logger              logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	ticketRepo := repository.NewTicketRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	reviewRepo := repository.NewReviewRecordRepository(db)
	auditRepo := repository.NewAuditEntryRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	kbRepo := repository.NewKBArticleRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingRepo := repository.NewSettingsRepository(db)

	classifierClient := classifier.NewHTTPClient(&cfg.Classifier, log)
	notifier := appnotification.NewStoreNotifier(notificationRepo, log)
	markdownService := markdown.NewService()

	triageDefaults, err := setting.NewTriageSettings(
		cfg.Triage.AutoCloseEnabled,
		cfg.Triage.ConfidenceThreshold,
		cfg.Triage.SLAHours,
	)
	if err != nil {
		log.Warnw("invalid triage defaults in config, falling back", "error", err)
		triageDefaults = setting.NewDefaultTriageSettings(cfg.Triage.AutoCloseEnabled)
	}

	triageUC := triageusecases.NewTriageTicketUseCase(
		ticketRepo, kbRepo, suggestionRepo, settingRepo, auditRepo,
		classifierClient, cfg.Classifier.RetryCount, triageDefaults, log,
	)

	createTicketUC := ticketusecases.NewCreateTicketUseCase(ticketRepo, triageUC, log)
	getTicketUC := ticketusecases.NewGetTicketUseCase(ticketRepo, suggestionRepo, replyRepo, log)
	listTicketsUC := ticketusecases.NewListTicketsUseCase(ticketRepo, log)
	getAuditTrailUC := ticketusecases.NewGetAuditTrailUseCase(ticketRepo, auditRepo, log)

	reviewDraftUC := reviewusecases.NewReviewDraftUseCase(
		ticketRepo, suggestionRepo, reviewRepo, replyRepo, auditRepo, notifier, log,
	)
	closeTicketUC := reviewusecases.NewCloseTicketUseCase(ticketRepo, auditRepo, log)
	reopenTicketUC := reviewusecases.NewReopenTicketUseCase(ticketRepo, auditRepo, notifier, log)

	listNotificationsUC := notificationusecases.NewListNotificationsUseCase(notificationRepo, log)
	markReadUC := notificationusecases.NewMarkNotificationReadUseCase(notificationRepo, log)

	ticketHandler := tickethandlers.NewTicketHandler(
		createTicketUC, getTicketUC, listTicketsUC, getAuditTrailUC,
		reviewDraftUC, closeTicketUC, reopenTicketUC, markdownService,
	)
	notificationHandler := notificationhandlers.NewNotificationHandler(listNotificationsUC, markReadUC)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	return &Router{
		engine:              engine,
		ticketHandler:       ticketHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
		logger:              log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:  r.ticketHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupNotificationRoutes(r.engine, &routes.NotificationRouteConfig{
		NotificationHandler: r.notificationHandler,
		AuthMiddleware:      r.authMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
