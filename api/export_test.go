package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportHandler_ExportCSV(t *testing.T) {
	r := newTestRouter(setupTestDB(t))
	food := createCategory(t, r, "Food")
	createExpense(t, r, fmt.Sprintf(`{"title":"Lunch","amount":12.5,"date":"2024-01-15","category_id":%d}`, food))
	createExpense(t, r, `{"title":"Bus","amount":2,"date":"2024-02-01"}`)

	w := doRequest(r, "GET", "/api/export/csv?year=2024&month=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=expenses_2024_01.csv", w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "Lunch")
	assert.Contains(t, body, "Food")
	assert.NotContains(t, body, "Bus")
}

func TestExportHandler_ExportExcel(t *testing.T) {
	r := newTestRouter(setupTestDB(t))
	createExpense(t, r, `{"title":"Lunch","amount":12.5,"date":"2024-01-15"}`)

	w := doRequest(r, "GET", "/api/export/excel", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=expenses.xlsx", w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Expenses", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Lunch", title)
}

func TestExportHandler_InvalidQuery(t *testing.T) {
	r := newTestRouter(setupTestDB(t))

	w := doRequest(r, "GET", "/api/export/csv?month=13", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(r, "GET", "/api/export/excel?category_id=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
