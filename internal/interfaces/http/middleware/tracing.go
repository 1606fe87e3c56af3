package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps request IDs copied into trace attributes.
const MaxRequestIDLength = 128

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
}

// Tracing returns OpenTelemetry tracing middleware. The span name follows
// the format "HTTP METHOD route_pattern" and error responses (4xx/5xx) are
// marked with codes.Error status.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	baseMiddleware := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		baseMiddleware(c)

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if requestID := traceRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}

		statusCode := c.Writer.Status()
		if statusCode >= http.StatusBadRequest {
			message := "Client Error"
			if statusCode >= http.StatusInternalServerError {
				message = "Internal Server Error"
			}
			span.SetStatus(codes.Error, message)
			span.SetAttributes(attribute.Int("http.status_code", statusCode))
		}
	}
}

// traceRequestID retrieves the request ID from the gin context or header.
// Header values are truncated to keep attribute size bounded.
func traceRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}

	headerID := c.GetHeader("X-Request-ID")
	if len(headerID) > MaxRequestIDLength {
		return headerID[:MaxRequestIDLength]
	}
	return headerID
}
