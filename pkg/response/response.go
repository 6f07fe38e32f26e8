package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
// 4. HTTP状态码由业务错误码段映射（见httpStatus），客户端可以只看状态码做粗粒度处理
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := bookService.GetBook(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)

	// 返回用户友好的错误信息，内部错误只进日志不出网
	c.JSON(httpStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(httpStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// httpStatus 业务错误码段到HTTP状态码的映射
// 错误码段约定见pkg/errors：
// - 40000-40099 业务冲突 -> 409
// - 40100-40199 认证授权 -> 401
// - 40400-40499 资源不存在 -> 404
// - 40900-40999 参数错误 -> 400
// - 其余（5xxxx及未知码）-> 500
func httpStatus(code int) int {
	switch {
	case code >= apperrors.ErrCodeBusinessError && code < apperrors.ErrCodeUnauthorized:
		return http.StatusConflict
	case code >= apperrors.ErrCodeUnauthorized && code < 40200:
		return http.StatusUnauthorized
	case code >= apperrors.ErrCodeNotFound && code < 40500:
		return http.StatusNotFound
	case code >= apperrors.ErrCodeInvalidParams && code < 41000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
