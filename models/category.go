package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 交易类别（支持一级子类别）
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	Type      string         `json:"type" gorm:"size:10;not null;index"` // income/expense
	Icon      string         `json:"icon,omitempty" gorm:"size:10"`
	Color     string         `json:"color,omitempty" gorm:"size:20"`
	ParentID  *uint          `json:"parent_id,omitempty" gorm:"index"`
	IsDefault bool           `json:"is_default" gorm:"default:false"` // 系统预置类别标记
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}

// 类别类型常量
const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

// IsValidCategoryType 校验类别类型
func IsValidCategoryType(t string) bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}
