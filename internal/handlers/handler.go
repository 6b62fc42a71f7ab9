package handlers

import (
	"itemhub/internal/logger"
	"itemhub/internal/service"

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

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.identityMiddleware)
	{
		h.registerItemRoutes(api)
		h.registerActivityRoutes(api)

		// Item feed over WebSocket (HTTP upgrade) — same port
		api.GET("/ws", h.wsConnect)
	}
}

func (h *Handler) registerItemRoutes(api *gin.RouterGroup) {
	items := api.Group("/items")
	{
		items.GET("", h.listItems)
		items.POST("", h.createItem)
		items.GET("/:id", h.getItem)
		items.PUT("/:id", h.updateItem)
		items.DELETE("/:id", h.deleteItem)
	}
}

func (h *Handler) registerActivityRoutes(api *gin.RouterGroup) {
	activity := api.Group("/activity")
	{
		activity.GET("", h.getActivity)
	}
}
