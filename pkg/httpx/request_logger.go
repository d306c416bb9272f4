package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// RequestLogger — access-лог запросов: 5xx → error, 4xx → warn, остальное → info.
// /metrics, /ping и пути из skip не логируются.
func RequestLogger(log ports.Logger, skip ...string) gin.HandlerFunc {
	silent := map[string]struct{}{"/metrics": {}, "/ping": {}}
	for _, p := range skip {
		silent[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := silent[route]; ok {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		tr, _ := ctxmeta.TraceIDFromContext(ctx)
		sp, _ := ctxmeta.SpanIDFromContext(ctx)

		logf := log.Infof
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status >= http.StatusBadRequest:
			logf = log.Warnf
		}

		// request_id добавляет сам логгер из контекста
		logf(ctx,
			"request trace=%s span=%s method=%s route=%s query=%q status=%d ip=%s duration=%s size=%d",
			tr, sp,
			c.Request.Method,
			route,
			c.Request.URL.RawQuery,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
