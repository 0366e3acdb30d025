package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `categories`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/categories", NewCategoryHandler().Create)

	body := `{"name":"宠物","type":"expense","icon":"🐱"}`
	req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Create_InvalidType(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/categories", NewCategoryHandler().Create)

	body := `{"name":"宠物","type":"transfer"}`
	req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_List_Filters(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 类型筛选 + 名称模糊查找（统一转小写比较）
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs("expense", "%咖%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "icon", "color", "is_default", "created_at", "updated_at", "deleted_at"}).
			AddRow(2, "咖啡", "expense", "☕", "#a16207", true, time.Now(), time.Now(), nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/categories", NewCategoryHandler().List)

	req := httptest.NewRequest("GET", "/categories?type=expense&name=咖", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/categories/:id", NewCategoryHandler().Delete)

	req := httptest.NewRequest("DELETE", "/categories/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
