package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "type", "amount", "currency", "description", "person", "date", "category_name", "account_name"}).
		AddRow(1, "expense", 22.5, "TJS", "咖啡", "", time.Date(2025, 8, 15, 10, 0, 0, 0, time.Local), "咖啡", "现金").
		AddRow(2, "income", 5000.0, "TJS", "工资", "", time.Date(2025, 8, 1, 9, 0, 0, 0, time.Local), "工资", "银行卡")
}

func TestExportHandler_ExportCSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(exportRows())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_date=2025-08-01&end_date=2025-08-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.String()
	// UTF-8 BOM 开头，保证 Excel 正确识别中文
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "咖啡")
	assert.Contains(t, body, "22.50")
	assert.Contains(t, body, "工资")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportCSV_MissingRange(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(exportRows())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/export/excel", NewExportHandler().ExportExcel)

	req := httptest.NewRequest("GET", "/export/excel?start_date=2025-08-01&end_date=2025-08-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	// xlsx 是 zip 格式，以 PK 开头
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
	require.NoError(t, mock.ExpectationsWereMet())
}
