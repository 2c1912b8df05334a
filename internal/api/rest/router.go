package rest

import (
	"errors"
	"log/slog"
	"net/http"

	_ "brain/docs"
	"brain/internal/dlock"
	"brain/internal/graph"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swagFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func createErrorResponse(c *gin.Context, code int, message string) {
	c.IndentedJSON(code, &ErrorResponse{
		Message: message,
	})
}

// statusFor maps service and lease errors onto HTTP status codes. Lock errors
// are kept apart from operation errors so clients can tell "my write failed"
// from "my write never ran".
func statusFor(err error) int {
	var storeErr *dlock.StoreError
	switch {
	case errors.Is(err, graph.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, graph.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, graph.ErrUnknownEntity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dlock.ErrAcquisitionExhausted):
		return http.StatusLocked
	case errors.As(err, &storeErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (api *apiDetails) setupRouter() *gin.Engine {
	r := gin.New()

	// Add logging middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/v1/health"},
	}))

	// Add recovery middleware to prevent crashes
	r.Use(gin.Recovery())

	// CORS configuration
	config := cors.DefaultConfig()
	config.AllowHeaders = append(config.AllowHeaders, "Access-Control-Allow-Origin")
	config.AllowOrigins = []string{"*"}
	r.Use(cors.New(config))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Brain memory graph",
			"status":  "running",
		})
	})

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/swagger/*any", ginSwagger.WrapHandler(swagFiles.Handler))

		apiV1.GET("/health", api.health)

		// Graph routes
		apiV1.GET("/graph", api.readGraph)
		apiV1.POST("/entities", api.createEntities)
		apiV1.POST("/relations", api.createRelations)

		// Lease routes
		apiV1.GET("/lock", api.getLock)
		apiV1.DELETE("/lock", api.clearLock)
	}

	api.logRoutes(r)

	return r
}

// health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (api *apiDetails) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// logRoutes logs all registered routes for debugging
func (api *apiDetails) logRoutes(r *gin.Engine) {
	for _, routeInfo := range r.Routes() {
		api.logger.Debug("Registered route",
			slog.String("method", routeInfo.Method),
			slog.String("path", routeInfo.Path),
			slog.String("handler", routeInfo.Handler),
		)
	}
}
