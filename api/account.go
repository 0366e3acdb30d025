package api

import (
	"errors"
	"strconv"

	"aifinance/database"
	"aifinance/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler 账户处理器
type AccountHandler struct{}

// NewAccountHandler 创建账户处理器
func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

// CreateAccountRequest 创建账户请求
type CreateAccountRequest struct {
	Name       string  `json:"name" binding:"required" example:"现金"`
	Type       string  `json:"type" binding:"required" example:"cash"`
	Balance    float64 `json:"balance" example:"0"`
	Currency   string  `json:"currency" example:"TJS"`
	Color      string  `json:"color" example:"#3b82f6"`
	Icon       string  `json:"icon" example:"💵"`
	DebtPerson string  `json:"debt_person" example:""`
}

// UpdateAccountRequest 更新账户请求
type UpdateAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
}

// Create 创建账户
// @Summary 创建账户
// @Description 创建一个新账户，余额默认 0，货币默认 TJS
// @Tags 账户
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if !models.IsValidAccountType(req.Type) {
		BadRequest(c, "未知账户类型: "+req.Type)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	account := models.Account{
		Name:       req.Name,
		Type:       req.Type,
		Balance:    req.Balance,
		Currency:   currency,
		Color:      req.Color,
		Icon:       req.Icon,
		IsDebt:     req.Type == models.AccountTypeDebt,
		DebtPerson: req.DebtPerson,
	}

	if err := database.DB.Create(&account).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建账户失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", account)
}

// List 获取全部账户
// @Summary 获取账户列表
// @Tags 账户
// @Produce json
// @Success 200 {object} Response{data=[]models.Account} "获取成功"
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	var accounts []models.Account
	if err := database.DB.Order("id ASC").Find(&accounts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, accounts)
}

// ListRegular 获取普通账户（非债务）
// @Summary 获取普通账户列表
// @Tags 账户
// @Produce json
// @Success 200 {object} Response{data=[]models.Account} "获取成功"
// @Router /api/v1/accounts/regular/list [get]
func (h *AccountHandler) ListRegular(c *gin.Context) {
	var accounts []models.Account
	if err := database.DB.Where("is_debt <> ?", true).Order("id ASC").Find(&accounts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, accounts)
}

// ListDebts 获取债务账户（含已隐藏的，前端自行过滤展示）
// @Summary 获取债务账户列表
// @Tags 账户
// @Produce json
// @Success 200 {object} Response{data=[]models.Account} "获取成功"
// @Router /api/v1/accounts/debts/list [get]
func (h *AccountHandler) ListDebts(c *gin.Context) {
	var accounts []models.Account
	if err := database.DB.Where("is_debt = ?", true).Order("id ASC").Find(&accounts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, accounts)
}

// Get 获取单个账户
// @Summary 获取账户详情
// @Tags 账户
// @Produce json
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=models.Account} "获取成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var account models.Account
	if err := database.DB.First(&account, id).Error; err != nil {
		NotFound(c, "账户不存在")
		return
	}
	Success(c, account)
}

// Update 更新账户基本信息（不涉及余额，余额只能通过入账变动）
// @Summary 更新账户
// @Tags 账户
// @Accept json
// @Produce json
// @Param id path int true "账户ID"
// @Param request body UpdateAccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "更新成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [patch]
func (h *AccountHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var account models.Account
	if err := database.DB.First(&account, id).Error; err != nil {
		NotFound(c, "账户不存在")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Currency != "" {
		updates["currency"] = req.Currency
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Icon != "" {
		updates["icon"] = req.Icon
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&account).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	database.DB.First(&account, account.ID)
	SuccessWithMessage(c, "更新成功", account)
}

// Delete 删除账户（无条件删除，不回滚历史交易的余额影响）
// @Summary 删除账户
// @Tags 账户
// @Produce json
// @Param id path int true "账户ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var account models.Account
	if err := database.DB.First(&account, id).Error; err != nil {
		NotFound(c, "账户不存在")
		return
	}

	if err := database.DB.Delete(&account).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// CloseDebt 关闭债务（隐藏账户，不删除）
// @Summary 关闭债务
// @Tags 账户
// @Produce json
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=models.Account} "关闭成功"
// @Failure 404 {object} Response "账户不存在或不是债务账户"
// @Router /api/v1/accounts/{id}/close-debt [patch]
func (h *AccountHandler) CloseDebt(c *gin.Context) {
	h.setDebtHidden(c, true, "关闭成功")
}

// ReopenDebt 重新打开债务（取消隐藏）
// @Summary 重新打开债务
// @Tags 账户
// @Produce json
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=models.Account} "打开成功"
// @Failure 404 {object} Response "账户不存在或不是债务账户"
// @Router /api/v1/accounts/{id}/reopen-debt [patch]
func (h *AccountHandler) ReopenDebt(c *gin.Context) {
	h.setDebtHidden(c, false, "打开成功")
}

func (h *AccountHandler) setDebtHidden(c *gin.Context, hidden bool, okMessage string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var account models.Account
	if err := database.DB.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "账户不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	// 关闭/打开只对债务账户有意义
	if !account.IsDebt {
		NotFound(c, "不是债务账户")
		return
	}

	if err := database.DB.Model(&account).Update("is_hidden", hidden).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	account.IsHidden = hidden
	SuccessWithMessage(c, okMessage, account)
}
