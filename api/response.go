package api

import (
	"errors"
	"net/http"

	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Error string `json:"error" example:"'amount' must be a positive number"`
}

// MessageResponse 删除等操作的确认信息
type MessageResponse struct {
	Message string `json:"message" example:"Expense 'Lunch' deleted"`
}

// internalErrorMessage release 模式下 500 响应的固定文案
const internalErrorMessage = "internal server error"

// Error 唯一的错误响应出口，所有错误体都是 {"error": message}
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409 错误响应
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500 错误响应，不向客户端暴露内部细节
func InternalError(c *gin.Context, err error) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("请求处理失败")
	Error(c, http.StatusInternalServerError, SafeErrorMessage(err, internalErrorMessage))
}

// Fail 把服务层错误映射为对应的状态码
func Fail(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		conflictErr   *service.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		BadRequest(c, validationErr.Message)
	case errors.As(err, &notFoundErr):
		NotFound(c, notFoundErr.Message)
	case errors.As(err, &conflictErr):
		Conflict(c, conflictErr.Message)
	default:
		InternalError(c, err)
	}
}

// Success 200 响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
