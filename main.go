package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/See2Code/transport-platform-sub000/config"
	dispatchCron "github.com/See2Code/transport-platform-sub000/cron"
	"github.com/See2Code/transport-platform-sub000/database"
	metricsRepo "github.com/See2Code/transport-platform-sub000/database/repository/metrics"
	reminderRepo "github.com/See2Code/transport-platform-sub000/database/repository/reminder"
	"github.com/See2Code/transport-platform-sub000/handlers"
	"github.com/See2Code/transport-platform-sub000/routes"
	"github.com/See2Code/transport-platform-sub000/services/dispatch"
	"github.com/See2Code/transport-platform-sub000/services/mailer"
	"github.com/See2Code/transport-platform-sub000/services/templates"
	"github.com/See2Code/transport-platform-sub000/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitLeaseClient()

	loc := config.DisplayLocation()

	// Repositories.
	remRepo := reminderRepo.NewMongoReminderRepo(config.ClaimStaleness())
	metRepo := metricsRepo.NewMongoMetricsRepo(loc)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := remRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to create reminder indexes: %v", err)
	}
	cancel()

	// Services.
	renderer := templates.NewRenderer(config.AppConfig.AppBaseURL, loc)
	sesMailer, err := mailer.NewSESMailer(
		context.Background(),
		config.AppConfig.AWSRegion,
		config.AppConfig.MailSender,
		config.AppConfig.MailSendPerSec,
		config.AppConfig.MailSendBurst,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize mail transport: %v", err)
	}

	jobs := []*dispatch.Job{
		dispatch.NewJob(dispatch.BusinessCasePolicy(), remRepo, metRepo, renderer, sesMailer, logger),
		dispatch.NewJob(dispatch.TransportPolicy(), remRepo, metRepo, renderer, sesMailer, logger),
	}

	worker := dispatchCron.NewWorker(jobs, metRepo, utils.GetLeaseClient(), loc, config.TickTimeout(), logger)
	if err := worker.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start dispatch worker: %v", err)
	}

	utils.StartHealthMonitor(utils.GetLeaseClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	reminderHandler := handlers.NewReminderHandler(remRepo)
	routes.RegisterRoutes(router, reminderHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	worker.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: error disconnecting from MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
