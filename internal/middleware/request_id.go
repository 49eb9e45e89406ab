package middleware

import (
	"strings"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID é o header HTTP para request ID
	HeaderRequestID = "X-Request-ID"
	// HeaderTraceID é o header HTTP para trace ID
	HeaderTraceID = "X-Trace-ID"
)

// RequestID adiciona request_id único a cada requisição
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Usa ID do header se existir, senão gera novo (8 chars)
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()[:8]
		}

		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		ctx = logger.WithTraceID(ctx, traceID)
		ctx = logger.WithResource(ctx, Resource(c.Request.URL.Path))
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, requestID)
		c.Header(HeaderTraceID, traceID)

		log := logger.Get(ctx)
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Str("client_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("Requisição iniciada")

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		logEvent := log.Info()
		if statusCode >= 400 {
			logEvent = log.Warn()
		}
		if statusCode >= 500 {
			logEvent = log.Error()
		}

		logEvent.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", statusCode).
			Int("size", c.Writer.Size()).
			Dur("latency", duration).
			Float64("latency_ms", float64(duration.Microseconds())/1000).
			Msg("Requisição concluída")
	}
}

// Resource classifica o caminho da requisição pelo recurso de domínio
func Resource(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/pendientes"):
		return "pendientes"
	case strings.HasPrefix(path, "/api/clientes"), strings.HasPrefix(path, "/api/clients"):
		return "clientes"
	case strings.HasPrefix(path, "/api/tasks"):
		return "tasks"
	case strings.HasPrefix(path, "/api/notify"), strings.HasPrefix(path, "/api/notifications"):
		return "notificaciones"
	case strings.HasPrefix(path, "/api"):
		return "api"
	case strings.HasPrefix(path, "/health"):
		return "health"
	case path == "/metrics":
		return "metrics"
	default:
		return "frontend"
	}
}
