package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"expensetracker/config"
	"expensetracker/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Port: ":0", Mode: gin.TestMode, BasePath: "/api"},
		Database: config.DatabaseConfig{
			Driver:   "sqlite",
			Path:     filepath.Join(t.TempDir(), "router.db"),
			LogLevel: "silent",
		},
		API:       config.APIConfig{DefaultLimit: 50, MaxLimit: 500, DefaultColor: "#3498db"},
		RateLimit: config.RateLimitConfig{Requests: 120, Window: time.Minute},
	}
}

func setupRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	db, err := database.Open(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return SetupRouter(cfg, db)
}

func call(r *gin.Engine, method, path, body string) (int, map[string]interface{}) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func TestRouter_EndToEnd(t *testing.T) {
	r := setupRouter(t, testConfig(t))

	code, cat := call(r, "POST", "/api/categories", `{"name":"Food","color":"#e74c3c"}`)
	require.Equal(t, http.StatusCreated, code)
	catID := cat["id"]

	code, resp := call(r, "POST", "/api/categories", `{"name":"Food"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Category 'Food' already exists", resp["error"])

	code, exp := call(r, "POST", "/api/expenses",
		fmt.Sprintf(`{"title":"Lunch","amount":12.50,"date":"2024-01-15","category_id":%v}`, catID))
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 12.5, exp["amount"])

	code, got := call(r, "GET", fmt.Sprintf("/api/expenses/%v", exp["id"]), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Lunch", got["title"])

	code, resp = call(r, "POST", "/api/expenses", `{"title":"Refund","amount":-5}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "'amount' must be a positive number", resp["error"])

	call(r, "POST", "/api/expenses", fmt.Sprintf(`{"title":"Dinner","amount":67.5,"date":"2024-01-20","category_id":%v}`, catID))
	code, summary := call(r, "GET", "/api/summary?year=2024&month=1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(80), summary["total"])
	byCategory := summary["by_category"].([]interface{})
	require.Len(t, byCategory, 1)
	assert.Equal(t, float64(80), byCategory[0].(map[string]interface{})["total"])

	code, _ = call(r, "DELETE", fmt.Sprintf("/api/expenses/%v", exp["id"]), "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(r, "GET", fmt.Sprintf("/api/expenses/%v", exp["id"]), "")
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = call(r, "DELETE", fmt.Sprintf("/api/categories/%v", catID), "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Category 'Food' and its expenses deleted", resp["message"])

	code, list := call(r, "GET", "/api/expenses", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), list["total"])
	assert.Empty(t, list["expenses"])
}

func TestRouter_UniformErrors(t *testing.T) {
	r := setupRouter(t, testConfig(t))

	code, resp := call(r, "GET", "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, resp["error"])

	code, resp = call(r, "PATCH", "/api/expenses", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "method not allowed", resp["error"])

	code, resp = call(r, "PUT", "/api/categories/1", `{"name":"x"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.NotEmpty(t, resp["error"])
}

func TestRouter_HealthAndCORS(t *testing.T) {
	r := setupRouter(t, testConfig(t))

	code, resp := call(r, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp["status"])

	req := httptest.NewRequest("OPTIONS", "/api/expenses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CustomBasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.BasePath = "/v2"
	r := setupRouter(t, cfg)

	code, _ := call(r, "GET", "/v2/categories", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(r, "GET", "/api/categories", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute}
	r := setupRouter(t, cfg)

	for i := 0; i < 2; i++ {
		code, _ := call(r, "GET", "/api/categories", "")
		require.Equal(t, http.StatusOK, code)
	}
	code, resp := call(r, "GET", "/api/categories", "")
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.NotEmpty(t, resp["error"])

	// 健康检查不受限流影响
	code, _ = call(r, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, code)
}
