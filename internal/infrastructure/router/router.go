package router

import (
	"net/http"

	"rental-service/internal/interface/handler"
	"rental-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with health, metrics and the API routes
func NewRouter(h *handler.Handler, gatherer prometheus.Gatherer, log logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), handler.AccessLog(log))

	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	h.RegisterRoutes(engine)

	log.Info("Registered routes", "count", len(engine.Routes()))
	return engine
}
