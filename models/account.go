package models

import (
	"time"

	"gorm.io/gorm"
)

// Account 账户模型（普通账户 + 债务账户）
type Account struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"size:100;not null"`
	Type       string         `json:"type" gorm:"size:20;not null"` // cash/card/bank/savings/debt
	Balance    float64        `json:"balance" gorm:"type:decimal(12,2);not null;default:0"`
	Currency   string         `json:"currency" gorm:"size:3;not null;default:TJS"`
	Color      string         `json:"color,omitempty" gorm:"size:20"`
	Icon       string         `json:"icon,omitempty" gorm:"size:10"`
	IsDebt     bool           `json:"is_debt" gorm:"default:false;index"`
	IsHidden   bool           `json:"is_hidden" gorm:"default:false"` // 债务关闭后隐藏，不删除
	DebtPerson string         `json:"debt_person,omitempty" gorm:"size:100;index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Account) TableName() string {
	return "accounts"
}

// 账户类型常量
const (
	AccountTypeCash    = "cash"
	AccountTypeCard    = "card"
	AccountTypeBank    = "bank"
	AccountTypeSavings = "savings"
	AccountTypeDebt    = "debt"
)

// DefaultCurrency 默认货币
const DefaultCurrency = "TJS"

// GetAccountTypes 获取所有账户类型
func GetAccountTypes() []string {
	return []string{
		AccountTypeCash,
		AccountTypeCard,
		AccountTypeBank,
		AccountTypeSavings,
		AccountTypeDebt,
	}
}

// IsValidAccountType 校验账户类型
func IsValidAccountType(t string) bool {
	switch t {
	case AccountTypeCash, AccountTypeCard, AccountTypeBank, AccountTypeSavings, AccountTypeDebt:
		return true
	}
	return false
}
