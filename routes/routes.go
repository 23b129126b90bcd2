package routes

import (
	"net/http"
	"time"

	"mentorhub/handlers"
	"mentorhub/middleware"
	"mentorhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the scheduling engine.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.ActorAuthMiddleware())
		api.POST("", bh.CreateBooking)
		api.GET("/stats", bh.GetBookingStats)
		api.GET("/:id", bh.GetBooking)
		api.POST("/:id/confirm", bh.ConfirmBooking)
		api.POST("/:id/cancel", bh.CancelBooking)
		api.POST("/:id/complete", bh.CompleteBooking)
	}
}

// RegisterMentorRoutes sets up mentor directory and availability endpoints.
func RegisterMentorRoutes(r *gin.Engine, mh *handlers.MentorHandler, bh *handlers.BookingHandler) {
	api := r.Group("/api/mentors")
	{
		api.Use(middleware.ActorAuthMiddleware())
		api.GET("", mh.ListMentors)
		api.GET("/:id", mh.GetMentor)
		api.GET("/:id/bookings", bh.ListMentorBookings)
		api.GET("/:id/availability", bh.GetAvailability)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, mh *handlers.MentorHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh)
	RegisterMentorRoutes(r, mh, bh)
}
