package service

import (
	"testing"

	"aifinance/config"

	"github.com/stretchr/testify/assert"
)

func TestReportMailer_GenerateReportBody(t *testing.T) {
	m := NewReportMailer(&config.EmailConfig{})

	rows := []ReportRow{
		{Category: "餐饮", Total: 350.50, Count: 12},
		{Category: "打车", Total: 80, Count: 4},
	}
	body := m.generateReportBody("2025-08", rows, 5000, 430.50)

	assert.Contains(t, body, "2025-08 月度账单")
	assert.Contains(t, body, "5000.00")
	assert.Contains(t, body, "430.50")
	assert.Contains(t, body, "餐饮")
	assert.Contains(t, body, "350.50")
	assert.Contains(t, body, "12 笔")
	assert.Contains(t, body, "打车")
	// 模板中的百分号正确转义
	assert.Contains(t, body, "width: 100%;")
	assert.NotContains(t, body, "%!")
}

func TestReportMailer_SendDisabled(t *testing.T) {
	m := NewReportMailer(&config.EmailConfig{Enabled: false})
	err := m.SendMonthlyReport("a@b.c", "2025-08", nil, 0, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "邮件服务未启用")
}

func TestReportMailer_SendNoRecipient(t *testing.T) {
	m := NewReportMailer(&config.EmailConfig{Enabled: true})
	err := m.SendMonthlyReport("", "2025-08", nil, 0, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "未指定收件人")
}
