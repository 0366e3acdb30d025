package database

import (
	"fmt"
	"log"

	"aifinance/config"
	"aifinance/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接并完成一次性启动工作（迁移 + 预置数据）。
// 预置数据只在对应表为空时写入，且发生在路由启动之前，不会与请求并发。
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
	); err != nil {
		return err
	}

	if err := Seed(DB); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// Seed 初始化默认账户和类别（仅当对应表为空时，重复调用不会产生重复数据）
func Seed(db *gorm.DB) error {
	if err := seedDefaultAccounts(db); err != nil {
		return fmt.Errorf("初始化默认账户失败: %w", err)
	}
	if err := seedDefaultCategories(db); err != nil {
		return fmt.Errorf("初始化默认类别失败: %w", err)
	}
	return nil
}

func seedDefaultAccounts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	accounts := []models.Account{
		{Name: "现金", Type: models.AccountTypeCash, Balance: 0, Currency: models.DefaultCurrency, Icon: "💵"},
		{Name: "银行卡", Type: models.AccountTypeCard, Balance: 0, Currency: models.DefaultCurrency, Icon: "💳"},
	}
	return db.Create(&accounts).Error
}

func seedDefaultCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		// 支出
		{Name: "餐饮", Type: models.CategoryTypeExpense, Icon: "🍔", Color: "#ef4444", IsDefault: true},
		{Name: "咖啡", Type: models.CategoryTypeExpense, Icon: "☕", Color: "#a16207", IsDefault: true},
		{Name: "超市", Type: models.CategoryTypeExpense, Icon: "🛒", Color: "#f59e0b", IsDefault: true},
		{Name: "交通", Type: models.CategoryTypeExpense, Icon: "🚗", Color: "#3b82f6", IsDefault: true},
		{Name: "打车", Type: models.CategoryTypeExpense, Icon: "🚕", Color: "#eab308", IsDefault: true},
		{Name: "加油", Type: models.CategoryTypeExpense, Icon: "⛽", Color: "#64748b", IsDefault: true},
		{Name: "娱乐", Type: models.CategoryTypeExpense, Icon: "🎬", Color: "#ec4899", IsDefault: true},
		{Name: "购物", Type: models.CategoryTypeExpense, Icon: "🛍️", Color: "#a855f7", IsDefault: true},
		{Name: "医疗", Type: models.CategoryTypeExpense, Icon: "💊", Color: "#10b981", IsDefault: true},
		{Name: "账单", Type: models.CategoryTypeExpense, Icon: "📱", Color: "#14b8a6", IsDefault: true},
		// 收入
		{Name: "工资", Type: models.CategoryTypeIncome, Icon: "💰", Color: "#10b981", IsDefault: true},
		{Name: "奖金", Type: models.CategoryTypeIncome, Icon: "🎁", Color: "#3b82f6", IsDefault: true},
		{Name: "兼职", Type: models.CategoryTypeIncome, Icon: "💻", Color: "#a855f7", IsDefault: true},
	}
	return db.Create(&categories).Error
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
