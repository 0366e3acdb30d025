package api

import (
	"aifinance/config"
	"aifinance/database"
	"aifinance/service"

	"github.com/gin-gonic/gin"
)

// AIHandler AI记账处理器
type AIHandler struct{}

// NewAIHandler 创建AI记账处理器
func NewAIHandler() *AIHandler {
	return &AIHandler{}
}

// ParseRequest AI解析请求
type ParseRequest struct {
	Text      string `json:"text" binding:"required" example:"咖啡 22，打车 15"`
	AccountID uint   `json:"account_id" example:"1"`
}

// Parse 自然语言记账
// @Summary 自然语言记账
// @Description 把自由文本交给AI拆分成交易并逐条入账；account_id 缺省时使用第一个账户
// @Tags AI
// @Accept json
// @Produce json
// @Param request body ParseRequest true "待解析文本"
// @Success 200 {object} Response{data=service.ParseResult} "解析完成（含成功、需澄清、失败三种结果）"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/ai/parse [post]
func (h *AIHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	parser := service.NewAIParser(&config.GetConfig().AI, database.DB)
	result := parser.Parse(req.Text, req.AccountID)

	// 需澄清与失败也返回 200，由 data.success 区分，前端据此决定交互
	Success(c, result)
}
