package rest

import (
	"net/http"
	"path/filepath"

	"github.com/Gunvolt24/price_catalog/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — gin-движок с middleware и маршрутами API каталога.
// otelServiceName пустой — без otelgin (бенчмарки, тесты без трассировки).
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/products", h.productsByIDs)
		api.GET("/products/:id/price-history", h.priceHistory)
		api.GET("/products/:id/name", h.productName)
		api.GET("/search", h.searchProducts)
		api.GET("/categories", h.listCategories)
		api.GET("/categories/:id", h.categoryPage)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}
