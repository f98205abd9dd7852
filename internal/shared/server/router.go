package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sales-assistant/internal/menu"
	"sales-assistant/internal/recommendations"
	"sales-assistant/internal/services/health"
	"sales-assistant/internal/shared/config"
	"sales-assistant/internal/shared/metrics"
	"sales-assistant/internal/shared/server/middleware"
	"sales-assistant/internal/shared/server/respond"
)

const serviceName = "sales-assistant-api"

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config                 config.Config
	Health                 *health.Service
	MenuHandler            *menu.Handler
	RecommendationsHandler *recommendations.Handler
	Limiter                *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"service": serviceName,
			"status":  "ok",
		})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := gin.H{"ok": true}
		if deps.Health != nil {
			status = deps.Health.Status(c.Request.Context())
		}
		code := http.StatusOK
		if ok, _ := status["ok"].(bool); !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})

	if deps.MenuHandler != nil {
		var analyzeMW []gin.HandlerFunc
		if deps.Limiter != nil && deps.Config.AnalyzeRateLimit > 0 {
			analyzeMW = append(analyzeMW, middleware.RateLimit("analyze_menu", middleware.RateLimitRule{
				Rate:  deps.Config.AnalyzeRateLimit,
				Burst: deps.Config.AnalyzeBurst,
			}, deps.Limiter))
		}
		deps.MenuHandler.RegisterRoutes(api, analyzeMW...)
	}
	if deps.RecommendationsHandler != nil {
		deps.RecommendationsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
