package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hr-blob-backend/internal/collections"
	"hr-blob-backend/internal/documents"
	"hr-blob-backend/internal/shared/config"
	"hr-blob-backend/internal/shared/metrics"
	"hr-blob-backend/internal/shared/server/middleware"
	"hr-blob-backend/internal/shared/server/respond"
)

const uploadRateGroup = "UPLOAD"

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config    config.Config
	People    *collections.Handler
	WorkItems *collections.Handler
	Alerts    *collections.Handler
	Documents *documents.Handler
	Seeder    *collections.Seeder
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				uploadRateGroup: {Rate: 2, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasSuffix(c.Request.URL.Path, "/documents") {
					return uploadRateGroup
				}
				return ""
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	deps.People.RegisterRoutes(api)
	deps.WorkItems.RegisterRoutes(api)
	deps.Alerts.RegisterRoutes(api)
	deps.Documents.RegisterRoutes(api)
	deps.Seeder.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
