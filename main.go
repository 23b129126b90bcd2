package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentorhub/config"
	"mentorhub/cron"
	"mentorhub/database"
	bookingRepo "mentorhub/database/repository/booking"
	mentorRepo "mentorhub/database/repository/mentor"
	"mentorhub/handlers"
	"mentorhub/middleware"
	"mentorhub/models"
	"mentorhub/routes"
	"mentorhub/services/notification"
	"mentorhub/services/scheduling"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookRepo := bookingRepo.NewMongoBookingRepo()
	mentRepo := mentorRepo.NewMongoMentorRepo()

	// services.
	var notifier notification.NotificationService
	if config.AppConfig.FirebaseCredentialsFile != "" {
		utils.FirebaseInit()
		notifier = &notification.DefaultNotificationService{Mentors: mentRepo}
	} else {
		logger.Info("no Firebase credentials configured, logging booking events instead")
		notifier = &notification.LogNotificationService{Logger: logger}
	}

	engine := scheduling.NewDefaultSchedulingEngine(bookRepo, mentRepo, notifier, utils.GetCacheClient())
	engine.SessionLength = time.Duration(config.AppConfig.SessionMinutes) * time.Minute
	engine.KindDurations = map[models.BookingKind]time.Duration{
		models.KindWorkshop: time.Duration(config.AppConfig.WorkshopSessionMinutes) * time.Minute,
	}
	engine.MaxWindowDays = config.AppConfig.BookingWindowDays
	engine.CacheTTL = time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second

	bookingHandler := handlers.NewBookingHandler(engine, logger)
	mentorHandler := handlers.NewMentorHandler(mentRepo)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, mentorHandler)

	// Background worker: completion and reminder sweeps.
	cron.InitSchedulingWorker(engine)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

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
