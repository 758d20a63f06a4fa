package api

import (
	"net/http"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/api/handlers"
	"github.com/Marga-Ghale/flatmeals-backend/internal/api/middleware"
	"github.com/Marga-Ghale/flatmeals-backend/internal/config"
	"github.com/Marga-Ghale/flatmeals-backend/internal/metrics"
	"github.com/Marga-Ghale/flatmeals-backend/internal/socket"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterDeps is what the HTTP surface needs beyond config.
type RouterDeps struct {
	Handlers  *handlers.Handlers
	WebSocket *socket.Handler
	// StoreBackend is reported by /health.
	StoreBackend string
}

// NewRouter builds the gin engine: middleware, health, metrics and the API
// under cfg.APIPrefix.
func NewRouter(cfg *config.Config, deps RouterDeps) (*gin.Engine, error) {
	if err := middleware.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	// Configure CORS
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 || containsWildcard(cfg.CORSOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"store":     deps.StoreBackend,
		}
		if deps.WebSocket != nil {
			body["ws_clients"] = deps.WebSocket.Hub.GetConnectedClientsCount()
		}
		c.JSON(http.StatusOK, body)
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Timeout(cfg.RequestTimeout))
	{
		deps.Handlers.RegisterRoutes(api)

		if deps.WebSocket != nil {
			api.GET("/groups/:groupId/ws", deps.WebSocket.HandleWebSocket)
		}
	}

	return r, nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
