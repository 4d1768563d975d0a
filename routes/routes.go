package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pitchbook/handlers"
	"pitchbook/middleware"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Reservation *handlers.ReservationHandler
	Payment     *handlers.PaymentHandler
	Venue       *handlers.VenueHandler
	User        *handlers.UserHandler
}

// RegisterCORS applies the CORS policy.
func RegisterCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterUser)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware())
		api.PUT("/fcm-token", hb.User.UpdateFCMToken)
	}
}

// RegisterVenueRoutes registers session browsing and administration.
func RegisterVenueRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/venues")
	{
		// Browsing a venue's calendar is public.
		api.GET("/:venueID/sessions", hb.Venue.ListSessions)

		// Publishing and canceling sessions is venue administration.
		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.POST("/:venueID/sessions", hb.Venue.CreateSession)
		admin.DELETE("/:venueID/sessions/:id", hb.Venue.CancelSession)
	}
}

// RegisterReservationRoutes registers the booking lifecycle endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.Reservation.CreateReservation)
		api.GET("", hb.Reservation.ListReservations)
		api.GET("/:id", hb.Reservation.GetReservation)
		api.PATCH("/:id", hb.Reservation.UpdateReservation)
		api.DELETE("/:id", hb.Reservation.DeleteReservation)

		admin := r.Group("/api/reservations")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.PATCH("/:id/status", hb.Reservation.SetReservationStatus)
	}

	// Lookup by the shareable booking code lives under its own prefix.
	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.JWTAuthUserMiddleware())
	bookings.GET("/:reference", hb.Reservation.GetReservationByReference)
}

// RegisterPaymentRoutes registers payment initiation and confirmation.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/:reservationID/initiate", hb.Payment.InitiatePayment)
		api.POST("/:reservationID/confirm", hb.Payment.ConfirmPayment)
		api.GET("/:reservationID/status", hb.Payment.PaymentStatus)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Pitchbook"})
	})
}
