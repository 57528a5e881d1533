package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于区分错误类型，pkg/response据此映射HTTP状态码
// 2. Message是返回给客户端的纯文本提示
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为内部错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 404xx: 资源不存在
// - 4xxxx: 其余客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal = 50000 // 内部错误

	// 资源错误（40400-40499）
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeAuthorNotFound = 40405 // 作者不存在

	// 业务规则错误（40000-40099）
	ErrCodeISBNDuplicate       = 40004 // ISBN已存在
	ErrCodeAuthorNameDuplicate = 40006 // 作者名已存在
	ErrCodeAuthorImmutable     = 40007 // 图书作者不可修改
	ErrCodeUnknownAuthor       = 40008 // 作者不存在(创建图书时引用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	ErrInternal = New(ErrCodeInternal, "Internal server error.")

	ErrInvalidID = New(ErrCodeInvalidParams, "Invalid id.")
	ErrBindError = New(ErrCodeBindError, "Invalid request body.")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error.")
}

// IsNotFound 判断错误码是否属于404xx段
func (e *AppError) IsNotFound() bool {
	return e.Code >= 40400 && e.Code < 40500
}

// IsClientError 判断是否为客户端错误（4xxxx）
func (e *AppError) IsClientError() bool {
	return e.Code >= 40000 && e.Code < 50000
}
