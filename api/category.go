package api

import (
	"strconv"
	"strings"

	"aifinance/database"
	"aifinance/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CreateCategoryRequest 创建类别请求
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required" example:"餐饮"`
	Type     string `json:"type" binding:"required" example:"expense"`
	Icon     string `json:"icon" example:"🍔"`
	Color    string `json:"color" example:"#ef4444"`
	ParentID *uint  `json:"parent_id"`
}

// UpdateCategoryRequest 更新类别请求
type UpdateCategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Create 创建类别
// @Summary 创建类别
// @Tags 类别
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if !models.IsValidCategoryType(req.Type) {
		BadRequest(c, "类别类型必须是 income 或 expense")
		return
	}

	category := models.Category{
		Name:     strings.TrimSpace(req.Name),
		Type:     req.Type,
		Icon:     req.Icon,
		Color:    req.Color,
		ParentID: req.ParentID,
	}
	if category.Name == "" {
		BadRequest(c, "类别名称不能为空")
		return
	}

	if err := database.DB.Create(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建类别失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", category)
}

// List 获取类别列表，支持类型筛选和名称模糊查找（不区分大小写）
// @Summary 获取类别列表
// @Tags 类别
// @Produce json
// @Param type query string false "类型筛选 income/expense"
// @Param name query string false "名称模糊查找"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Category{})

	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var categories []models.Category
	if err := query.Order("id ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, categories)
}

// Get 获取单个类别
// @Summary 获取类别详情
// @Tags 类别
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} Response{data=models.Category} "获取成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}
	Success(c, category)
}

// Update 更新类别（类型不可变更，避免历史交易语义错乱）
// @Summary 更新类别
// @Tags 类别
// @Accept json
// @Produce json
// @Param id path int true "类别ID"
// @Param request body UpdateCategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Icon != "" {
		updates["icon"] = req.Icon
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&category).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	database.DB.First(&category, category.ID)
	SuccessWithMessage(c, "更新成功", category)
}

// Delete 删除类别
// @Summary 删除类别
// @Tags 类别
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
