package api

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"expensetracker/config"
	"expensetracker/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testLimits = config.APIConfig{DefaultLimit: 50, MaxLimit: 500, DefaultColor: "#3498db"}

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB 每个测试使用独立的临时 SQLite 文件
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "api.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// setupMockDB 用 sqlmock 模拟 MySQL，用于覆盖数据库故障路径
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() { sqlDB.Close() })
	return gormDB, mock
}

// withMode 临时切换运行模式
func withMode(t *testing.T, mode string) {
	t.Helper()
	old := config.GlobalConfig
	config.GlobalConfig = &config.Config{Server: config.ServerConfig{Mode: mode}}
	t.Cleanup(func() { config.GlobalConfig = old })
}

// newTestRouter 按服务端相同的路径挂载所有处理器
func newTestRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	g := r.Group("/api")

	expenses := NewExpenseHandler(db, testLimits)
	g.GET("/expenses", expenses.List)
	g.POST("/expenses", expenses.Create)
	g.GET("/expenses/:id", expenses.Get)
	g.PUT("/expenses/:id", expenses.Update)
	g.DELETE("/expenses/:id", expenses.Delete)

	categories := NewCategoryHandler(db, testLimits.DefaultColor)
	g.GET("/categories", categories.List)
	g.POST("/categories", categories.Create)
	g.DELETE("/categories/:id", categories.Delete)

	g.GET("/summary", NewSummaryHandler(db).Monthly)

	export := NewExportHandler(db)
	g.GET("/export/csv", export.ExportCSV)
	g.GET("/export/excel", export.ExportExcel)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
