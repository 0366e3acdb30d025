package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"aifinance/config"
	"aifinance/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthTestConfig(t *testing.T, password string, useHash bool) *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Auth:   config.AuthConfig{Enabled: true, Username: "admin"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	if useHash {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		cfg.Auth.PasswordHash = string(hash)
	} else {
		cfg.Auth.Password = password
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	return cfg
}

func doLogin(cfg *config.Config, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", NewAuthHandler(cfg).Login)

	req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login_WithHash(t *testing.T) {
	cfg := newAuthTestConfig(t, "password123", true)
	defer func() { config.GlobalConfig = nil }()

	w := doLogin(cfg, `{"username":"admin","password":"password123"}`)
	assert.Equal(t, 200, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)

	// 签发的 token 可通过校验
	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthHandler_Login_WithPlainPassword(t *testing.T) {
	cfg := newAuthTestConfig(t, "secret", false)
	defer func() { config.GlobalConfig = nil }()

	w := doLogin(cfg, `{"username":"admin","password":"secret"}`)
	assert.Equal(t, 200, w.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	cfg := newAuthTestConfig(t, "password123", true)
	defer func() { config.GlobalConfig = nil }()

	w := doLogin(cfg, `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, 401, w.Code)
}

func TestAuthHandler_Login_WrongUsername(t *testing.T) {
	cfg := newAuthTestConfig(t, "password123", true)
	defer func() { config.GlobalConfig = nil }()

	w := doLogin(cfg, `{"username":"root","password":"password123"}`)
	assert.Equal(t, 401, w.Code)
}

func TestAuthHandler_Login_AuthDisabled(t *testing.T) {
	cfg := newAuthTestConfig(t, "password123", true)
	cfg.Auth.Enabled = false
	defer func() { config.GlobalConfig = nil }()

	w := doLogin(cfg, `{"username":"admin","password":"password123"}`)
	assert.Equal(t, 400, w.Code)
}
