package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID 请求ID头
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID gin.Context中的请求ID键，response.Error据此写日志
	ContextKeyRequestID = "request_id"
)

// maxRequestIDLen 客户端传入的请求ID超过该长度时重新生成
const maxRequestIDLen = 128

// RequestID 请求ID中间件
// 客户端传入X-Request-ID时沿用，否则生成UUID；结果写回响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// GetRequestID 从Context获取请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
