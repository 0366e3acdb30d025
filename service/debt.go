package service

import (
	"errors"
	"sync"

	"aifinance/models"

	"gorm.io/gorm"
)

// debtResolveMu 串行化债务账户的查找或创建。
// 同名并发请求都观察到"不存在"时会重复建户，加锁后整个查找+创建互斥。
var debtResolveMu sync.Mutex

// FindOrCreateDebtAccount 按对方姓名精确匹配查找债务账户，不存在则创建。
// 已关闭（隐藏）的债务账户同样命中，不会重复创建。
func FindOrCreateDebtAccount(db *gorm.DB, personName, currency string) (*models.Account, error) {
	debtResolveMu.Lock()
	defer debtResolveMu.Unlock()

	var account models.Account
	err := db.Where("is_debt = ? AND debt_person = ?", true, personName).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if currency == "" {
		currency = models.DefaultCurrency
	}
	account = models.Account{
		Name:       personName,
		Type:       models.AccountTypeDebt,
		Balance:    0,
		Currency:   currency,
		Icon:       "📝",
		IsDebt:     true,
		IsHidden:   false,
		DebtPerson: personName,
	}
	if err := db.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
