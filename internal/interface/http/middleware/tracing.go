package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// HeaderTraceID 响应中的Trace ID头
const HeaderTraceID = "X-Trace-ID"

// Tracing 链路追踪中间件
// otelgin从请求头提取W3C traceparent并创建根Span，随后把Trace ID写回响应头
func Tracing(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName),
		traceIDHeader(),
	}
}

func traceIDHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			c.Header(HeaderTraceID, traceID)
		}
		c.Next()
	}
}
