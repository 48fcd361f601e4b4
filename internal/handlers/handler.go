package handlers

import (
	"user_accounts/internal/logger"
	"user_accounts/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.home)
	router.GET("/health", h.health)

	h.registerAccountRoutes(router)

	return router
}

func (h *Handler) registerAccountRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/alluser", h.allUsers)
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/logout", h.logout)
	}

	// Endpoints requiring an authenticated session cookie
	protected := api.Group("", h.sessionMiddleware)
	{
		protected.GET("/profile", h.profile)
		protected.PUT("/updateEmail", h.updateEmail)
		protected.PUT("/updatePassword", h.updatePassword)
		protected.DELETE("/deleteAccount", h.deleteAccount)
	}
}
