package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// pathID 解析路径参数:id，失败时直接写400响应
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrInvalidID)
		return 0, false
	}
	return uint(id), true
}

// bindJSON 绑定并校验请求体，失败时直接写400响应
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		zap.L().Debug("请求体绑定失败",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.Error(c, apperrors.ErrBindError)
		return false
	}
	return true
}
