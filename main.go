package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"pitchbook/config"
	"pitchbook/cron"
	"pitchbook/database"
	reservationRepo "pitchbook/database/repository/reservation"
	sessionRepo "pitchbook/database/repository/session"
	userRepoPkg "pitchbook/database/repository/user"
	"pitchbook/handlers"
	"pitchbook/middleware"
	"pitchbook/routes"
	"pitchbook/services/notification"
	"pitchbook/services/payment"
	"pitchbook/services/reservation"
	"pitchbook/services/user"
	"pitchbook/services/venue"
	"pitchbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitPaymentPlanCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterCORS(router)
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	sessRepo := sessionRepo.NewMongoSessionRepo()
	resRepo := reservationRepo.NewMongoReservationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// async notification dispatch.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifyQueueDB,
	})
	defer asynqClient.Close()
	dispatcher := notification.NewAsynqDispatcher(asynqClient, logger)

	notificationService, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	cron.InitNotificationWorker(notificationService)

	// services.
	reservationService := &reservation.DefaultReservationService{
		Repo:                    resRepo,
		Sessions:                sessRepo,
		Users:                   userRepo,
		Notifier:                dispatcher,
		Logger:                  logger,
		ReleaseSessionsOnDelete: config.AppConfig.ReleaseSessionsOnDelete,
	}

	paymentCoordinator := &payment.DefaultPaymentCoordinator{
		Reservations: reservationService,
		Provider:     payment.NewStripeProvider(),
		Cache:        utils.GetPaymentPlanCacheClient(),
		Logger:       logger,
		Currency:     config.AppConfig.Currency,
	}

	userService := &user.DefaultUserService{
		Repo:         userRepo,
		Reservations: reservationService,
		Logger:       logger,
	}

	venueService := &venue.DefaultVenueService{
		Sessions: sessRepo,
		Logger:   logger,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Reservation: handlers.NewReservationHandler(reservationService, logger),
		Payment:     handlers.NewPaymentHandler(paymentCoordinator, logger),
		Venue:       handlers.NewVenueHandler(venueService, logger),
		User:        handlers.NewUserHandler(userService, logger),
	}

	routes.RegisterHealthRoute(router)
	routes.RegisterUserRoutes(router, handlerBundle)
	routes.RegisterVenueRoutes(router, handlerBundle)
	routes.RegisterReservationRoutes(router, handlerBundle)
	routes.RegisterPaymentRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Pitchbook listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("mongo disconnect: %v", err)
	}
}
