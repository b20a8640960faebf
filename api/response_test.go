package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFail_MapsServiceErrors(t *testing.T) {
	withMode(t, "release")

	r := newTestRouter(setupTestDB(t))
	createCategory(t, r, "Food")

	// 400 / 404 / 409 都携带具体信息
	w := doRequest(r, "POST", "/api/categories", `{"name":"Food"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Category 'Food' already exists", decode(t, w.Body.Bytes())["error"])

	w = doRequest(r, "POST", "/api/expenses", `{"title":"x","amount":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "'amount' must be a positive number", decode(t, w.Body.Bytes())["error"])
}

func TestInternalError_ReleaseModeHidesDetails(t *testing.T) {
	withMode(t, "release")

	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expenses`").
		WillReturnError(errors.New("dial tcp 10.0.0.1:3306: connection refused"))

	r := newTestRouter(db)
	w := doRequest(r, "GET", "/api/expenses", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInternalError_DebugModeShowsDetails(t *testing.T) {
	withMode(t, "debug")

	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnError(errors.New("connection refused"))

	r := newTestRouter(db)
	w := doRequest(r, "GET", "/api/summary?year=2024&month=1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode(t, w.Body.Bytes())["error"], "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInternalError_CategoryTransactionRollsBack(t *testing.T) {
	withMode(t, "release")

	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `categories`").
		WithArgs("Food").
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	r := newTestRouter(db)
	w := doRequest(r, "POST", "/api/categories", `{"name":"Food"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDelete_RecordNotFoundViaMock(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color"}))
	mock.ExpectRollback()

	r := newTestRouter(db)
	w := doRequest(r, "DELETE", "/api/categories/5", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Category 5 not found"}`, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestError_Abort(t *testing.T) {
	r := gin.New()
	called := false
	r.GET("/x", func(c *gin.Context) {
		Error(c, http.StatusTeapot, "short and stout")
	}, func(c *gin.Context) {
		called = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error":"short and stout"}`, w.Body.String())
	assert.False(t, called)
}
