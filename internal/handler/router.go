package handler

import (
	"net/http"

	"sf-tree-identifier/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
)

// RouterConfig holds everything the router serves.
type RouterConfig struct {
	Trees   *TreeHandler
	Resolve *ResolveHandler
	// Metrics is optional; without it /metrics is not served.
	Metrics *observability.Metrics
	// Limiter is optional and applies to the lookup routes only.
	Limiter *rate.Limiter
}

// NewRouter wires the API routes and middleware.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())
	if cfg.Metrics != nil {
		r.Use(Metrics(cfg.Metrics))
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	lookups := r.Group("/")
	if cfg.Limiter != nil {
		lookups.Use(RateLimit(cfg.Limiter))
	}
	lookups.GET("/trees", cfg.Trees.FindTrees)
	lookups.GET("/resolve", cfg.Resolve.Resolve)

	return r
}
