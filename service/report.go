package service

import (
	"fmt"
	"strings"

	"aifinance/config"

	"gopkg.in/gomail.v2"
)

// ReportMailer 月度账单汇总邮件服务
type ReportMailer struct {
	cfg *config.EmailConfig
}

// NewReportMailer 创建报表邮件服务
func NewReportMailer(cfg *config.EmailConfig) *ReportMailer {
	return &ReportMailer{cfg: cfg}
}

// ReportRow 按类别汇总的一行报表数据
type ReportRow struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// SendMonthlyReport 发送月度账单汇总邮件
func (m *ReportMailer) SendMonthlyReport(to, month string, rows []ReportRow, totalIncome, totalExpense float64) error {
	if !m.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 email.enabled=true")
	}
	if to == "" {
		to = m.cfg.To
	}
	if to == "" {
		return fmt.Errorf("未指定收件人，请配置 email.to 或在请求中提供")
	}

	subject := fmt.Sprintf("【记账助手】%s 月度账单", month)
	body := m.generateReportBody(month, rows, totalIncome, totalExpense)

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.Username, m.cfg.From))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// generateReportBody 生成报表邮件内容
func (m *ReportMailer) generateReportBody(month string, rows []ReportRow, totalIncome, totalExpense float64) string {
	var table strings.Builder
	for _, row := range rows {
		table.WriteString(fmt.Sprintf(`
            <tr>
                <td>%s</td>
                <td class="num">%.2f</td>
                <td class="num">%d 笔</td>
            </tr>`, row.Category, row.Total, row.Count))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        .summary { display: flex; gap: 16px; margin-bottom: 24px; }
        .summary .card { flex: 1; border-radius: 8px; padding: 16px; text-align: center; }
        .summary .income { background: #ecfdf5; color: #059669; }
        .summary .expense { background: #fef2f2; color: #dc2626; }
        table { width: 100%%; border-collapse: collapse; }
        th, td { padding: 10px 8px; border-bottom: 1px solid #e5e7eb; text-align: left; font-size: 14px; }
        td.num { text-align: right; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 %s 月度账单</h1>
        </div>
        <div class="content">
            <div class="summary">
                <div class="card income">收入<br><strong>%.2f</strong></div>
                <div class="card expense">支出<br><strong>%.2f</strong></div>
            </div>
            <table>
                <tr><th>类别</th><th style="text-align:right">金额</th><th style="text-align:right">笔数</th></tr>%s
            </table>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 记账助手 - 您的个人财务管理工具</p>
        </div>
    </div>
</body>
</html>
`, month, totalIncome, totalExpense, table.String())
}
