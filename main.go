// File: courier/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courier/config"
	"courier/cron"
	"courier/database"
	"courier/database/repository"
	"courier/handlers"
	"courier/middleware"
	"courier/routes"
	"courier/services/dispatch"
	"courier/services/notification"
	"courier/services/reminder"
	"courier/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	utils.InitMetrics()

	database.InitDB()
	utils.InitCache()
	utils.SendGridInit()
	utils.TwilioInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	directoryRepo := repository.NewMongoDirectoryRepo()
	templateRepo := repository.NewMongoTemplateRepo()
	scheduleRepo := repository.NewMongoScheduleRepo()
	reminderRepo := repository.NewMongoReminderRepo()

	// delivery executor over the configured channel senders.
	senders := dispatch.DefaultSenders(
		utils.GetSendGridClient(),
		utils.GetTwilioClient(),
		config.AppConfig.EmailFrom,
		config.AppConfig.EmailFromName,
		config.AppConfig.TwilioFromNumber,
	)
	executor := dispatch.NewExecutor(
		senders,
		config.AppConfig.DispatchRetryMax,
		time.Duration(config.AppConfig.DispatchSendTimeout)*time.Second,
		logger,
	)

	// services.
	notifService, err := notification.NewDefaultNotificationService(directoryRepo, templateRepo, executor, utils.GetCacheClient())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	reminderService, err := reminder.NewDefaultReminderService(
		scheduleRepo,
		reminderRepo,
		templateRepo,
		executor,
		time.Duration(config.AppConfig.ReminderWindowHours)*time.Hour,
		config.AppConfig.ReminderKeyStrategy,
		config.AppConfig.ReminderTemplateID,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize reminder service: %v", err)
	}

	// Background sweep trigger and worker.
	cron.InitReminderWorker(reminderService)
	cron.InitSweepScheduler()

	// handlers and routes.
	notificationHandler := handlers.NewNotificationHandler(notifService)
	reminderHandler := handlers.NewReminderHandler(reminderService)

	routes.RegisterHealthRoute(router)
	routes.RegisterMetricsRoute(router)
	routes.RegisterNotificationRoutes(router, notificationHandler)
	routes.RegisterReminderRoutes(router, reminderHandler)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
