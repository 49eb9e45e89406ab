package handler

import (
	"database/sql"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/config"
	"github.com/cleberrangel/pendientes-api/internal/mail"
	"github.com/cleberrangel/pendientes-api/internal/metrics"
	"github.com/cleberrangel/pendientes-api/internal/middleware"
	"github.com/cleberrangel/pendientes-api/internal/repository"
	"github.com/cleberrangel/pendientes-api/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps reúne o que o router precisa para montar os handlers
type Deps struct {
	DB            *sql.DB
	Config        *config.Config
	Sender        mail.Sender
	Notifications *service.NotificationService
	Version       string
}

// NewRouter monta o engine gin com todas as rotas da aplicação
func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config

	pendingRepo := repository.NewPendingRepository(deps.DB)
	clientRepo := repository.NewClientRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)

	notifications := deps.Notifications
	if notifications == nil {
		notifications = service.NewNotificationService(pendingRepo, deps.Sender, cfg.BaseURL)
	}
	clientService := service.NewClientService(clientRepo, taskRepo, pendingRepo, deps.Sender)

	pendingHandler := NewPendingHandler(pendingRepo)
	clientHandler := NewClientHandler(clientRepo)
	taskHandler := NewTaskHandler(taskRepo, clientRepo, clientService)
	notificationHandler := NewNotificationHandler(notifications, clientService)
	exportHandler := NewExportHandler(pendingRepo, clientRepo, service.NewExcelGenerator())
	healthHandler := NewHealthHandler(deps.DB, deps.Version, cfg.MailConfigured())

	r := gin.New()
	r.Use(middleware.RequestID()) // Request ID + logging estruturado
	r.Use(gin.Recovery())
	r.Use(middleware.MetricsMiddleware())

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Authorization", "Content-Type", middleware.HeaderRequestID},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.SetHTMLTemplate(pageTemplates)

	// Health e métricas (públicos)
	r.GET("/health/live", healthHandler.LivenessCheck)
	r.GET("/health/ready", healthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Link enviado por e-mail, aberto direto no navegador
	r.GET("/api/pendientes/:id/complete-all-tasks", notificationHandler.CompleteAllTasks)

	api := r.Group("/api")
	api.Use(middleware.BearerAuth(middleware.AuthConfig{
		TokenAPI: cfg.TokenAPI,
	}))
	api.Use(middleware.AuditMiddleware())
	{
		api.GET("/pendientes", pendingHandler.List)
		api.GET("/pendientes/export", exportHandler.Pending)
		api.GET("/pendientes/:id", pendingHandler.Get)
		api.POST("/pendientes", pendingHandler.Create)
		api.PUT("/pendientes/:id", pendingHandler.Update)
		api.DELETE("/pendientes/:id", pendingHandler.Delete)

		api.GET("/clientes", clientHandler.List)
		api.GET("/clientes/export", exportHandler.Clients)
		api.GET("/clientes/:id", clientHandler.Get)
		api.POST("/clientes", clientHandler.Create)
		api.POST("/clientes/bulk", clientHandler.CreateBulk)
		api.PUT("/clientes/:id", clientHandler.Update)
		api.DELETE("/clientes/:id", clientHandler.Delete)

		api.GET("/clients/:id/tasks", taskHandler.List)
		api.POST("/clients/:id/tasks", taskHandler.Create)
		api.POST("/clients/:id/tasks/bulk", taskHandler.CreateBulk)
		api.POST("/clients/:id/create-pending-tasks", taskHandler.CreatePending)
		api.POST("/clients/:id/send-pending-tasks", taskHandler.SendPending)

		api.PUT("/tasks/:id", taskHandler.SetCompleted)
		api.DELETE("/tasks/:id", taskHandler.Delete)
		api.POST("/tasks/global", taskHandler.AddGlobal)

		api.POST("/notify/:id", notificationHandler.NotifyOne)
		api.POST("/notifications/check-all", notificationHandler.CheckAll)
	}

	r.NoRoute(ServeSPA(cfg.StaticDir))

	return r
}
