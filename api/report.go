package api

import (
	"time"

	"aifinance/config"
	"aifinance/database"
	"aifinance/models"
	"aifinance/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler 报表处理器
type ReportHandler struct {
	cfg *config.Config
}

// NewReportHandler 创建报表处理器
func NewReportHandler(cfg *config.Config) *ReportHandler {
	return &ReportHandler{cfg: cfg}
}

// SendMonthlyReportRequest 发送月度报表请求
type SendMonthlyReportRequest struct {
	Month string `json:"month" binding:"required" example:"2025-08"`
	To    string `json:"to" example:"me@example.com"`
}

// SendMonthly 汇总指定月份的收支并通过邮件发送
// @Summary 发送月度账单邮件
// @Description 汇总指定月份（YYYY-MM）的收支与按类别的支出分布，发送到指定邮箱或配置的默认收件人
// @Tags 报表
// @Accept json
// @Produce json
// @Param request body SendMonthlyReportRequest true "报表参数"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/reports/monthly [post]
func (h *ReportHandler) SendMonthly(c *gin.Context) {
	var req SendMonthlyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	start, err := time.ParseInLocation("2006-01", req.Month, time.Local)
	if err != nil {
		BadRequest(c, "月份格式错误，应为 YYYY-MM")
		return
	}
	end := start.AddDate(0, 1, 0)

	var totalIncome, totalExpense float64
	row := database.DB.Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0), "+
			"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)").
		Where("date >= ? AND date < ?", start, end).
		Row()
	if err := row.Scan(&totalIncome, &totalExpense); err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	var rows []service.ReportRow
	if err := database.DB.Model(&models.Transaction{}).
		Select("categories.name AS category, SUM(transactions.amount) AS total, COUNT(*) AS count").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.type = ? AND transactions.date >= ? AND transactions.date < ?",
			models.TransactionTypeExpense, start, end).
		Group("categories.name").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	mailer := service.NewReportMailer(&h.cfg.Email)
	if err := mailer.SendMonthlyReport(req.To, req.Month, rows, totalIncome, totalExpense); err != nil {
		BadRequest(c, SafeErrorMessage(err, "发送报表失败"))
		return
	}

	SuccessWithMessage(c, "发送成功", nil)
}
