package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizdesk-backend/internal/config"
	"bizdesk-backend/internal/jobs"
	"bizdesk-backend/internal/logger"
	"bizdesk-backend/internal/metrics"
	"bizdesk-backend/internal/notify"
	"bizdesk-backend/internal/repository/postgres"
	"bizdesk-backend/internal/scheduler"
	"bizdesk-backend/internal/service"

	_ "github.com/lib/pq"
)

// Standalone scheduler process, for deployments that keep cron work off the
// API servers. Runs the same jobs as the embedded scheduler in cmd/server.
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.Bool("once", false, "Run all jobs once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BizDesk cron runner...")

	metrics.Init()

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db)

	sender := notify.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	dispatcher := notify.NewDispatcher(sender, cfg.Lifecycle.NotificationQueueSize)
	defer dispatcher.Close()

	lifecycleSvc := service.NewTenantLifecycleService(
		store.TenantRepository,
		dispatcher,
		time.Duration(cfg.Lifecycle.TransitionTimeoutSeconds)*time.Second,
	)
	jobRunner := jobs.NewJobRunner(cfg, store.TenantRepository, lifecycleSvc)

	if *runOnce {
		logger.Info("Running jobs once")
		jobRunner.ReactivateExpiredSuspensions()
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down cron runner")
}
