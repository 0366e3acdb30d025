package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"aifinance/models"

	"gorm.io/gorm"
)

// PostIntent 一次入账请求携带的全部交易属性
type PostIntent struct {
	Type        string
	Amount      float64
	Currency    string
	CategoryID  *uint
	AccountID   uint
	AccountToID *uint
	Description string
	Place       string
	Person      string
	Comment     string
	DebtSubType string
	Date        time.Time
}

// PostingEngine 入账引擎：校验交易请求、计算余额变动、
// 在一个数据库事务内写入账本记录并调整相关账户余额。
type PostingEngine struct {
	db *gorm.DB
}

// NewPostingEngine 创建入账引擎
func NewPostingEngine(db *gorm.DB) *PostingEngine {
	return &PostingEngine{db: db}
}

// Post 入账一笔交易。
// 校验全部通过之前不产生任何写入；账本写入与余额调整作为一个原子单元提交，
// 不会出现"交易已记录但余额未调整"的中间状态。
func (e *PostingEngine) Post(intent *PostIntent) (*models.Transaction, error) {
	if err := validateIntent(intent); err != nil {
		return nil, err
	}

	// 主账户必须存在（所有交易类型）
	main, err := e.loadAccount(intent.AccountID)
	if err != nil {
		return nil, err
	}

	currency := intent.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	accountToID := intent.AccountToID
	switch intent.Type {
	case models.TransactionTypeTransfer:
		dest, err := e.loadAccount(*intent.AccountToID)
		if err != nil {
			return nil, err
		}
		// 债务账户只能通过 debt 类型变动
		if main.IsDebt || dest.IsDebt {
			return nil, fmt.Errorf("%w: 转账不支持债务账户", ErrInvalidRequest)
		}
	case models.TransactionTypeDebt:
		// 查找或创建对方的债务账户，必须先于余额计算完成
		debtAccount, err := FindOrCreateDebtAccount(e.db, intent.Person, currency)
		if err != nil {
			return nil, err
		}
		accountToID = &debtAccount.ID
	}

	mainDelta, counterDelta := settlementDeltas(intent.Type, intent.DebtSubType, intent.Amount)

	date := intent.Date
	if date.IsZero() {
		date = time.Now()
	}

	txn := models.Transaction{
		Type:        intent.Type,
		Amount:      intent.Amount,
		Currency:    currency,
		CategoryID:  intent.CategoryID,
		AccountID:   intent.AccountID,
		AccountToID: accountToID,
		Description: intent.Description,
		Place:       intent.Place,
		Person:      intent.Person,
		Comment:     intent.Comment,
		DebtSubType: intent.DebtSubType,
		Date:        date,
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if err := adjustBalance(tx, txn.AccountID, mainDelta); err != nil {
			return err
		}
		if accountToID != nil && counterDelta != 0 {
			return adjustBalance(tx, *accountToID, counterDelta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// Reverse 删除一笔交易并回滚其余额影响，删除与回滚在同一事务内完成。
// 交易涉及的账户如已被删除，跳过对应回滚。
func (e *PostingEngine) Reverse(id uint) error {
	var txn models.Transaction
	if err := e.db.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 交易 %d", ErrNotFound, id)
		}
		return err
	}

	mainDelta, counterDelta := settlementDeltas(txn.Type, txn.DebtSubType, txn.Amount)

	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&txn).Error; err != nil {
			return err
		}
		if err := adjustBalance(tx, txn.AccountID, -mainDelta); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if txn.AccountToID != nil && counterDelta != 0 {
			if err := adjustBalance(tx, *txn.AccountToID, -counterDelta); err != nil && !errors.Is(err, ErrNotFound) {
				return err
			}
		}
		return nil
	})
}

// validateIntent 入账前校验，失败时不产生任何写入
func validateIntent(intent *PostIntent) error {
	if !models.IsValidTransactionType(intent.Type) {
		return fmt.Errorf("%w: 未知交易类型 %q", ErrInvalidRequest, intent.Type)
	}
	if intent.Amount <= 0 {
		return fmt.Errorf("%w: 金额必须大于0", ErrInvalidRequest)
	}
	switch intent.Type {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		if intent.CategoryID == nil {
			return fmt.Errorf("%w: 收支交易必须指定类别", ErrInvalidRequest)
		}
	case models.TransactionTypeTransfer:
		if intent.AccountToID == nil {
			return fmt.Errorf("%w: 转账必须指定目标账户", ErrInvalidRequest)
		}
	case models.TransactionTypeDebt:
		if strings.TrimSpace(intent.Person) == "" {
			return fmt.Errorf("%w: 债务交易必须指定对方姓名", ErrInvalidRequest)
		}
		if !models.IsValidDebtSubType(intent.DebtSubType) {
			return fmt.Errorf("%w: 债务子类型非法 %q", ErrInvalidRequest, intent.DebtSubType)
		}
	}
	return nil
}

// settlementDeltas 计算主账户与对方账户的余额变动，amount 始终为正数金额。
// 债务账户余额表示"对方欠我的净额"，为正说明对方欠我，可以为负。
// 注意：i_gave 与 i_returned（及 they_gave 与 they_returned）数值效果相同，
// 借出与我方还款未做方向区分。
func settlementDeltas(txType, debtSubType string, amount float64) (mainDelta, counterDelta float64) {
	switch txType {
	case models.TransactionTypeIncome:
		return amount, 0
	case models.TransactionTypeExpense:
		return -amount, 0
	case models.TransactionTypeTransfer:
		return -amount, amount
	case models.TransactionTypeDebt:
		switch debtSubType {
		case models.DebtSubTypeIGave, models.DebtSubTypeIReturned:
			return -amount, amount
		case models.DebtSubTypeTheyGave, models.DebtSubTypeTheyReturned:
			return amount, -amount
		}
	}
	return 0, 0
}

// adjustBalance 通过单条原子 UPDATE 调整余额。
// 不采用读改写，保证并发入账同一账户时不丢失更新。
func adjustBalance(tx *gorm.DB, accountID uint, delta float64) error {
	res := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: 账户 %d", ErrNotFound, accountID)
	}
	return nil
}

func (e *PostingEngine) loadAccount(id uint) (*models.Account, error) {
	var account models.Account
	if err := e.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 账户 %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &account, nil
}
