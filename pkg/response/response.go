package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 响应约定：
// 1. 成功时直接返回业务数据（JSON），不再包一层{code,message,data}
// 2. 失败时返回纯文本提示，HTTP状态码由AppError.Code推导
// 3. 内部错误只写日志，客户端只看到通用提示

// OK 200响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应，Location指向新资源
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// NoContent 204响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := bookUseCase.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := StatusOf(appErr)

	// 记录详细错误到日志（包含内部错误）
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.Error(appErr),
		)
	}

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		message = apperrors.ErrInternal.Message
	}
	c.String(status, message)
}

// StatusOf 业务错误码 → HTTP状态码
// - 404xx → 404
// - 其余4xxxx → 400
// - 5xxxx及未知 → 500
func StatusOf(appErr *apperrors.AppError) int {
	switch {
	case appErr.IsNotFound():
		return http.StatusNotFound
	case appErr.IsClientError():
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
