package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction 交易记录模型
// 一条记录对应一次已经完成入账的余额变动，不存在"待入账"状态。
// Amount 始终保存正数金额，方向由 Type/DebtSubType 决定。
type Transaction struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Type        string         `json:"type" gorm:"size:10;not null;index"` // income/expense/transfer/debt
	Amount      float64        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency    string         `json:"currency" gorm:"size:3;not null;default:TJS"`
	CategoryID  *uint          `json:"category_id,omitempty" gorm:"index"`
	AccountID   uint           `json:"account_id" gorm:"not null;index"`
	AccountToID *uint          `json:"account_to_id,omitempty" gorm:"index"` // 转账目标账户或债务账户
	Description string         `json:"description,omitempty" gorm:"size:255"`
	Place       string         `json:"place,omitempty" gorm:"size:100"`
	Person      string         `json:"person,omitempty" gorm:"size:100"`
	Comment     string         `json:"comment,omitempty" gorm:"size:255"`
	DebtSubType string         `json:"debt_sub_type,omitempty" gorm:"size:20"` // i_gave/i_returned/they_gave/they_returned
	Date        time.Time      `json:"date" gorm:"not null;index"`             // 用户指定的交易时间，区别于 CreatedAt
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// 交易类型常量
const (
	TransactionTypeIncome   = "income"
	TransactionTypeExpense  = "expense"
	TransactionTypeTransfer = "transfer"
	TransactionTypeDebt     = "debt"
)

// 债务子类型常量
const (
	DebtSubTypeIGave        = "i_gave"        // 我借出
	DebtSubTypeIReturned    = "i_returned"    // 我还款
	DebtSubTypeTheyGave     = "they_gave"     // 对方借给我
	DebtSubTypeTheyReturned = "they_returned" // 对方还款
)

// IsValidTransactionType 校验交易类型
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer, TransactionTypeDebt:
		return true
	}
	return false
}

// IsValidDebtSubType 校验债务子类型
func IsValidDebtSubType(s string) bool {
	switch s {
	case DebtSubTypeIGave, DebtSubTypeIReturned, DebtSubTypeTheyGave, DebtSubTypeTheyReturned:
		return true
	}
	return false
}
