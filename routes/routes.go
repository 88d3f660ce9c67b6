package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"safelife/handlers"
	"safelife/middleware"
)

// RegisterAuthRoutes registers account lifecycle endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/reset/request", hb.Auth.RequestPasswordResetHandler)
		api.POST("/reset/confirm", hb.Auth.ConfirmPasswordResetHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.POST("/logout", hb.Auth.LogoutHandler)
		api.DELETE("/account", hb.Auth.DeleteAccountHandler)
	}
}

// RegisterUserRoutes registers user lookup and consent endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.GET("/:id/type", hb.Auth.GetUserTypeHandler)
		api.GET("/:id/consent", hb.Auth.GetConsentHandler)
		api.POST("/:id/consent", hb.Auth.AcceptConsentHandler)
	}
}

// RegisterSchedulingRoutes registers availability and booking endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))

		api.GET("/professionals", hb.Availability.ListProfessionalsHandler)

		api.GET("/availability/:professionalId", hb.Availability.GetScheduleHandler)
		api.PUT("/availability/:professionalId/day/:day", hb.Availability.SetDaySlotsHandler)
		api.POST("/availability/:professionalId/save", hb.Availability.SaveAllHandler)
		api.GET("/availability/:professionalId/can-remove", hb.Availability.CanRemoveHandler)

		api.POST("/bookings", hb.Booking.CreateBookingHandler)
		api.PATCH("/bookings/:id/confirm", hb.Booking.ConfirmBookingHandler)
		api.GET("/bookings/professional/:id", hb.Booking.ListForProfessionalHandler)
		api.GET("/bookings/patient/:id", hb.Booking.ListForPatientHandler)
	}
}

// RegisterChatRoutes registers conversation, messaging and websocket endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chats")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.POST("", hb.Chat.GetOrCreateConversationHandler)
		api.GET("", hb.Chat.ListConversationsHandler)
		api.GET("/partners", hb.Chat.ListPartnersHandler)
		api.GET("/:id/messages", hb.Chat.ListMessagesHandler)
		api.POST("/:id/messages", hb.Chat.SendMessageHandler)
	}

	r.GET("/ws", middleware.JWTAuthMiddleware(hb.AuthCache), hb.WS.ServeWS)
}

// RegisterFeedRoutes registers the community feed endpoints.
func RegisterFeedRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/posts")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.POST("", hb.Feed.CreatePostHandler)
		api.GET("", hb.Feed.ListPostsHandler)
		api.GET("/:id", hb.Feed.GetPostHandler)
		api.POST("/:id/comments", hb.Feed.AddCommentHandler)
		api.GET("/:id/comments", hb.Feed.ListCommentsHandler)
		api.POST("/:id/like", hb.Feed.ToggleLikeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm SafeLife"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterSchedulingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterFeedRoutes(r, hb)
	RegisterHealthRoute(r)
}
