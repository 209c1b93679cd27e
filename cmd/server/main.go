package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	api "bizdesk-backend/internal/api/http"
	"bizdesk-backend/internal/config"
	"bizdesk-backend/internal/jobs"
	"bizdesk-backend/internal/logger"
	"bizdesk-backend/internal/metrics"
	"bizdesk-backend/internal/notify"
	"bizdesk-backend/internal/repository/postgres"
	"bizdesk-backend/internal/scheduler"
	"bizdesk-backend/internal/security"
	"bizdesk-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BizDesk backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	metrics.Init()

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	// Notification pipeline
	sender := notify.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	dispatcher := notify.NewDispatcher(sender, cfg.Lifecycle.NotificationQueueSize)
	defer dispatcher.Close()

	// Services
	auditSvc := service.NewAuditService(store.AuditLogRepository)
	historySvc := service.NewEditHistoryService(store.EditHistoryRepository)
	lifecycleSvc := service.NewTenantLifecycleService(
		store.TenantRepository,
		dispatcher,
		time.Duration(cfg.Lifecycle.TransitionTimeoutSeconds)*time.Second,
	)
	tenantSvc := service.NewTenantService(store.TenantRepository)
	userSvc := service.NewUserService(store.UserRepository, store.TenantRepository, auditSvc)
	cascadeSvc := service.NewCascadeDeletionService(
		store.CascadeRepository,
		store.TenantRepository,
		store.UserRepository,
		service.NewConfirmationGuard(),
		time.Duration(cfg.Lifecycle.CascadeTimeoutSeconds)*time.Second,
	)
	orderSvc := service.NewSalesOrderService(store.SalesOrderRepository, historySvc)

	// HTTP surface
	verifier := security.NewTokenVerifier(cfg.JWT.Secret)
	auth := api.NewAuthMiddleware(verifier)
	tenantHandler := api.NewTenantHandler(lifecycleSvc, tenantSvc, cascadeSvc, userSvc)
	auditHandler := api.NewAuditHandler(auditSvc, historySvc)
	orderHandler := api.NewSalesOrderHandler(orderSvc)
	router := api.NewRouter(auth, tenantHandler, auditHandler, orderHandler)

	// Scheduler for suspension expiry
	jobRunner := jobs.NewJobRunner(cfg, store.TenantRepository, lifecycleSvc)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
