package handler

import (
	"net/http"

	"github.com/blues/ffs/internal/model"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// AppErrorResponse 按错误类别映射HTTP状态码
func AppErrorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case model.IsKind(err, model.ErrKindValidation):
		status = http.StatusBadRequest
	case model.IsKind(err, model.ErrKindRemoteCall):
		status = http.StatusBadGateway
	case model.IsKind(err, model.ErrKindStorageCorrupt):
		status = http.StatusInternalServerError
	}
	ErrorResponse(c, status, err.Error())
}
