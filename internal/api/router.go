package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clidwin/visualimprints-go/internal/config"
	"github.com/clidwin/visualimprints-go/internal/database"
	"github.com/clidwin/visualimprints-go/internal/handler"
	"github.com/clidwin/visualimprints-go/internal/middleware"
	"github.com/clidwin/visualimprints-go/internal/repository"
	"github.com/clidwin/visualimprints-go/internal/service"
)

// SetupRouter wires the repositories, services and handlers onto a gin
// engine.
func SetupRouter(cfg *config.Config, store *database.Store) *gin.Engine {
	pinRepo := repository.NewPinRepository(store)
	pinService := service.NewPinService(pinRepo)
	vizService := service.NewVisualizationService(pinRepo)

	pinHandler := handler.NewPinHandler(pinService)
	vizHandler := handler.NewVisualizationHandler(vizService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware; the frontend is served from a local origin
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Visual Imprints API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimitRPM, time.Minute))
	{
		auth := middleware.Auth(cfg.AuthSecret)

		pins := api.Group("/pins")
		{
			pins.POST("", auth, pinHandler.CreatePin)
			pins.GET("", pinHandler.GetAllPins)
			pins.GET("/recent", pinHandler.GetMostRecentPin)
			pins.GET("/dates", pinHandler.GetRecordedDates)
			pins.GET("/by-dates", pinHandler.GetPinsByDates)
			pins.GET("/last24h", pinHandler.GetLast24Hours)
			pins.GET("/:id", pinHandler.GetPinByID)
			pins.PUT("/:id", auth, pinHandler.UpdatePin)
			pins.DELETE("/:id", auth, pinHandler.DeletePin)
		}

		visualization := api.Group("/visualization")
		{
			visualization.GET("/tiles", vizHandler.GetTileGrid)
		}
	}

	return r
}
