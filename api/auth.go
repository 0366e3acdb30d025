package api

import (
	"crypto/subtle"

	"aifinance/config"
	"aifinance/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 认证处理器（单管理员模式）
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login 管理员登录
// @Summary 管理员登录
// @Description 校验配置中的单管理员账号，返回 JWT token；auth.enabled 为 false 时无需登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.cfg.Auth.Enabled {
		BadRequest(c, "未启用登录认证")
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if req.Username != h.cfg.Auth.Username || !h.checkPassword(req.Password) {
		Unauthorized(c, "用户名或密码错误")
		return
	}

	token, err := middleware.GenerateToken(1, req.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成token失败"))
		return
	}

	SuccessWithMessage(c, "登录成功", LoginResponse{
		Token:    token,
		Username: req.Username,
	})
}

// checkPassword 优先比对 bcrypt 哈希，未配置哈希时退化为明文常量时间比较
func (h *AuthHandler) checkPassword(password string) bool {
	if h.cfg.Auth.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.Auth.PasswordHash), []byte(password)) == nil
	}
	if h.cfg.Auth.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.cfg.Auth.Password), []byte(password)) == 1
}
