package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"safelife/config"
	"safelife/cron"
	"safelife/database"
	availabilityRepo "safelife/database/repository/availability"
	bookingRepo "safelife/database/repository/booking"
	chatRepo "safelife/database/repository/chat"
	feedRepo "safelife/database/repository/feed"
	userRepoPkg "safelife/database/repository/user"
	"safelife/handlers"
	"safelife/middleware"
	"safelife/routes"
	chatSvc "safelife/services/chat"
	feedSvc "safelife/services/feed"
	"safelife/services/scheduling"
	"safelife/services/tasks"
	userSvc "safelife/services/user"
	"safelife/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitResetCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()
	chRepo := chatRepo.NewMongoChatRepo()
	fdRepo := feedRepo.NewMongoFeedRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	hub := chatSvc.NewHub()
	reminderService := tasks.NewReminderService()

	schedulingService := &scheduling.DefaultSchedulingService{
		AvailabilityRepo: availRepo,
		BookingRepo:      bkRepo,
		UserRepo:         usrRepo,
		Reminders:        reminderService,
	}
	chatService := &chatSvc.DefaultChatService{
		Repo:  chRepo,
		Users: usrRepo,
		Hub:   hub,
	}
	feedService := &feedSvc.DefaultFeedService{
		Repo: fdRepo,
	}
	userService := &userSvc.DefaultUserService{
		Repo:         usrRepo,
		Availability: availRepo,
		AuthCache:    utils.GetAuthCacheClient(),
		ResetCache:   utils.GetResetCacheClient(),
	}

	// Start the reminder worker.
	cron.InitReminderWorker(hub)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:         handlers.NewAuthHandler(userService),
		Availability: handlers.NewAvailabilityHandler(schedulingService),
		Booking:      handlers.NewBookingHandler(schedulingService),
		Chat:         handlers.NewChatHandler(chatService),
		Feed:         handlers.NewFeedHandler(feedService),
		WS:           handlers.NewWSHandler(hub),
		AuthCache:    utils.GetAuthCacheClient(),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
