package api

import (
	"strconv"
	"time"

	"aifinance/database"
	"aifinance/models"
	"aifinance/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler 交易处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// CreateTransactionRequest 创建交易请求
type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required" example:"expense"`
	Amount      float64 `json:"amount" binding:"required" example:"22"`
	Currency    string  `json:"currency" example:"TJS"`
	CategoryID  *uint   `json:"category_id"`
	AccountID   uint    `json:"account_id" binding:"required"`
	AccountToID *uint   `json:"account_to_id"`
	Description string  `json:"description" example:"咖啡"`
	Place       string  `json:"place"`
	Person      string  `json:"person"`
	Comment     string  `json:"comment"`
	DebtSubType string  `json:"debt_sub_type"`
	Date        string  `json:"date" example:"2025-01-15"`
}

// ListTransactionQuery 交易列表查询参数
type ListTransactionQuery struct {
	Type       string `form:"type"`
	AccountID  uint   `form:"account_id"`
	CategoryID uint   `form:"category_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=20"`
}

// parseDate 兼容两种日期格式
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Create 创建交易并结算余额
// @Summary 创建交易
// @Description 记录一笔交易并原子地调整相关账户余额
// @Tags 交易
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, ok := parseDate(req.Date)
		if !ok {
			BadRequest(c, "日期格式错误，应为 YYYY-MM-DD")
			return
		}
		date = parsed
	}

	engine := service.NewPostingEngine(database.DB)
	txn, err := engine.Post(&service.PostIntent{
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    req.Currency,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
		AccountToID: req.AccountToID,
		Description: req.Description,
		Place:       req.Place,
		Person:      req.Person,
		Comment:     req.Comment,
		DebtSubType: req.DebtSubType,
		Date:        date,
	})
	if err != nil {
		ServiceError(c, err, "创建交易失败")
		return
	}

	SuccessWithMessage(c, "创建成功", txn)
}

// List 获取交易列表，按日期倒序分页
// @Summary 获取交易列表
// @Tags 交易
// @Produce json
// @Param type query string false "类型筛选"
// @Param account_id query int false "账户筛选"
// @Param category_id query int false "类别筛选"
// @Param start_date query string false "起始日期 YYYY-MM-DD"
// @Param end_date query string false "结束日期 YYYY-MM-DD"
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页条数，默认20"
// @Success 200 {object} Response{data=PageResponse} "获取成功"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var q ListTransactionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	query := database.DB.Model(&models.Transaction{})
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}
	if q.AccountID > 0 {
		// 主账户或对方账户均算"涉及该账户"
		query = query.Where("account_id = ? OR account_to_id = ?", q.AccountID, q.AccountID)
	}
	if q.CategoryID > 0 {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.StartDate != "" {
		if t, ok := parseDate(q.StartDate); ok {
			query = query.Where("date >= ?", t)
		}
	}
	if q.EndDate != "" {
		if t, ok := parseDate(q.EndDate); ok {
			// 结束日期含当天
			query = query.Where("date < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	var transactions []models.Transaction
	if err := query.Order("date DESC, id DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		List:     transactions,
	})
}

// Get 获取单笔交易
// @Summary 获取交易详情
// @Tags 交易
// @Produce json
// @Param id path int true "交易ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var txn models.Transaction
	if err := database.DB.First(&txn, id).Error; err != nil {
		NotFound(c, "交易不存在")
		return
	}
	Success(c, txn)
}

// Delete 删除交易并回滚余额影响
// @Summary 删除交易
// @Description 删除交易的同时撤销其对账户余额的影响
// @Tags 交易
// @Produce json
// @Param id path int true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	engine := service.NewPostingEngine(database.DB)
	if err := engine.Reverse(uint(id)); err != nil {
		ServiceError(c, err, "删除交易失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// CategoryStat 类别统计行
type CategoryStat struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Total        float64 `json:"total"`
	Count        int64   `json:"count"`
}

// StatisticsResponse 统计响应
type StatisticsResponse struct {
	TotalIncome  float64        `json:"total_income"`
	TotalExpense float64        `json:"total_expense"`
	Balance      float64        `json:"balance"`
	ByCategory   []CategoryStat `json:"by_category"`
}

// Statistics 收支统计
// @Summary 收支统计
// @Description 统计指定时间段内收支总额与按类别的支出分布
// @Tags 交易
// @Produce json
// @Param start_date query string false "起始日期 YYYY-MM-DD"
// @Param end_date query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} Response{data=StatisticsResponse} "获取成功"
// @Router /api/v1/transactions/statistics [get]
func (h *TransactionHandler) Statistics(c *gin.Context) {
	base := database.DB.Model(&models.Transaction{})
	if s := c.Query("start_date"); s != "" {
		if t, ok := parseDate(s); ok {
			base = base.Where("date >= ?", t)
		}
	}
	if s := c.Query("end_date"); s != "" {
		if t, ok := parseDate(s); ok {
			base = base.Where("date < ?", t.AddDate(0, 0, 1))
		}
	}

	var result StatisticsResponse

	row := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income, " +
			"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense").
		Row()
	if err := row.Scan(&result.TotalIncome, &result.TotalExpense); err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	result.Balance = result.TotalIncome - result.TotalExpense

	if err := base.Session(&gorm.Session{}).
		Select("transactions.category_id AS category_id, categories.name AS category_name, SUM(transactions.amount) AS total, COUNT(*) AS count").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.type = ?", models.TransactionTypeExpense).
		Group("transactions.category_id, categories.name").
		Order("total DESC").
		Scan(&result.ByCategory).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	Success(c, result)
}
