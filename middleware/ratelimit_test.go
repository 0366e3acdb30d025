package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(3, time.Minute))
	router.GET("/limited", func(c *gin.Context) {
		c.String(200, "ok")
	})

	// 窗口内前 3 次放行
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/limited", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, 200, w.Code)
	}

	// 第 4 次被限流
	req := httptest.NewRequest("GET", "/limited", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "请求过于频繁")
}
