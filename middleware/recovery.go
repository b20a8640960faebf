package middleware

import (
	"fmt"
	"net/http"

	"expensetracker/api"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery 捕获 panic，返回统一的 500 错误体
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"panic":  fmt.Sprint(recovered),
		}).Error("请求处理时发生 panic")
		api.Error(c, http.StatusInternalServerError, "internal server error")
	})
}
