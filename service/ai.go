package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"aifinance/config"
	"aifinance/models"

	"gorm.io/gorm"
)

// AIParser 文本解析服务：把自由文本（如"咖啡 22，蛋糕 15"）
// 交给 OpenAI 兼容接口拆分成候选交易，再逐条经入账引擎落账。
type AIParser struct {
	cfg    *config.AIConfig
	db     *gorm.DB
	engine *PostingEngine
	client *http.Client
}

// NewAIParser 创建文本解析服务
func NewAIParser(cfg *config.AIConfig, db *gorm.DB) *AIParser {
	return &AIParser{
		cfg:    cfg,
		db:     db,
		engine: NewPostingEngine(db),
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// ParsedItem 分类器返回的单条候选交易。
// 历史上类别字段有 categoryId 和 category 两种形态，且可能是数字、
// 数字字符串或类别名称，统一在本层归一化，下游不再处理。
type ParsedItem struct {
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Currency    string      `json:"currency"`
	CategoryID  interface{} `json:"categoryId"`
	Category    interface{} `json:"category"`
	Type        string      `json:"type"`
}

type classifierReply struct {
	Transactions          []ParsedItem `json:"transactions"`
	NeedsClarification    bool         `json:"needsClarification"`
	ClarificationQuestion string       `json:"clarificationQuestion"`
}

// ParseResult 解析结果。三种终态：
// 成功（Transactions 为已入账记录）、需要澄清（Question 待用户补充）、失败（Error 为用户可读信息）。
// 失败时 Transactions 保留失败前已入账的记录，已落账的不回滚。
type ParseResult struct {
	Success            bool                 `json:"success"`
	NeedsClarification bool                 `json:"needs_clarification,omitempty"`
	Question           string               `json:"question,omitempty"`
	Error              string               `json:"error,omitempty"`
	Transactions       []models.Transaction `json:"transactions"`
	Message            string               `json:"message,omitempty"`
}

// Parse 解析文本并入账。accountID 为 0 时使用第一个账户。
func (p *AIParser) Parse(text string, accountID uint) ParseResult {
	var categories []models.Category
	if err := p.db.Order("id ASC").Find(&categories).Error; err != nil {
		return ParseResult{Error: "查询类别失败"}
	}

	if accountID == 0 {
		var first models.Account
		if err := p.db.Order("id ASC").First(&first).Error; err != nil {
			return ParseResult{Error: "没有可用账户，请先创建账户"}
		}
		accountID = first.ID
	}

	reply, errMsg := p.callClassifier(text, categories)
	if errMsg != "" {
		return ParseResult{Error: errMsg}
	}

	// 需要澄清不是错误，是等待用户补充信息的正常终态
	if reply.NeedsClarification {
		return ParseResult{NeedsClarification: true, Question: reply.ClarificationQuestion}
	}

	created := make([]models.Transaction, 0, len(reply.Transactions))
	for _, item := range reply.Transactions {
		// 解析入口只产生收支两类交易
		txType := item.Type
		if txType != models.TransactionTypeIncome {
			txType = models.TransactionTypeExpense
		}

		categoryID := resolveCategoryID(item, txType, categories)
		if categoryID == nil {
			return ParseResult{Error: "没有可用的交易类别，请先创建类别", Transactions: created}
		}

		currency := item.Currency
		if currency == "" {
			currency = models.DefaultCurrency
		}

		txn, err := p.engine.Post(&PostIntent{
			Type:        txType,
			Amount:      item.Amount,
			Currency:    currency,
			CategoryID:  categoryID,
			AccountID:   accountID,
			Description: item.Description,
		})
		if err != nil {
			// 单条失败停止后续入账，已入账的保留
			return ParseResult{
				Error:        "部分交易入账失败: " + config.SafeErrorMessage(err, "入账失败"),
				Transactions: created,
			}
		}
		created = append(created, *txn)
	}

	return ParseResult{
		Success:      true,
		Transactions: created,
		Message:      fmt.Sprintf("已创建 %d 笔交易", len(created)),
	}
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// callClassifier 调用 OpenAI 兼容 chat/completions 接口。
// 返回的第二个值为用户可读的错误信息，为空表示成功。
func (p *AIParser) callClassifier(text string, categories []models.Category) (*classifierReply, string) {
	requestBody := map[string]interface{}{
		"model": p.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": buildParsePrompt(categories)},
			{"role": "user", "content": text},
		},
		"temperature":     0.3,
		"response_format": map[string]string{"type": "json_object"},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, "构建AI请求失败"
	}

	req, err := http.NewRequest("POST", strings.TrimRight(p.cfg.BaseURL, "/")+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, "创建AI请求失败"
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			return nil, "AI服务响应超时，请稍后再试"
		}
		return nil, "无法连接AI服务，请检查网络"
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, "AI服务密钥配置错误，请检查 ai.api_key"
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, "AI请求过于频繁，请稍后再试"
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, "AI服务暂时不可用，请稍后再试"
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Sprintf("AI服务返回错误: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "读取AI响应失败"
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil || len(completion.Choices) == 0 {
		return nil, "AI返回格式解析失败"
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return nil, "AI返回内容为空"
	}

	var reply classifierReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, "AI返回格式解析失败"
	}
	return &reply, ""
}

// buildParsePrompt 构建系统提示词，类别列表按收支分组并附带id
func buildParsePrompt(categories []models.Category) string {
	var expense, income strings.Builder
	for _, c := range categories {
		line := fmt.Sprintf("- %s (id: %d)\n", c.Name, c.ID)
		if c.Type == models.CategoryTypeExpense {
			expense.WriteString(line)
		} else {
			income.WriteString(line)
		}
	}
	if expense.Len() == 0 {
		expense.WriteString("- 无\n")
	}
	if income.Len() == 0 {
		income.WriteString("- 无\n")
	}

	return fmt.Sprintf(`你是一个记账助手，从用户输入中提取全部交易。

可用支出类别:
%s
可用收入类别:
%s
规则:
1. 提取文本中提到的每一笔消费或收入
2. 识别金额和货币（索莫尼/смн/с = TJS，卢布 = RUB，$ = USD，默认 TJS）
3. 按语义选择最合适的类别id
4. 没有合适的类别时使用列表中该类型的第一个
5. 信息不足以确定金额时，设置 needsClarification 并在 clarificationQuestion 中提问

严格返回JSON对象，不要附加任何其他文字:
{"transactions":[{"description":"简短描述","amount":22,"currency":"TJS","categoryId":"类别id","type":"expense"}],"needsClarification":false,"clarificationQuestion":null}`,
		expense.String(), income.String())
}

// resolveCategoryID 归一化分类器给出的类别。
// 依次尝试 categoryId、category 两个字段（按id或名称匹配）；
// 都不可用时回退到该类型下的第一个类别；该类型没有类别则返回 nil。
func resolveCategoryID(item ParsedItem, txType string, categories []models.Category) *uint {
	for _, raw := range []interface{}{item.CategoryID, item.Category} {
		if raw == nil {
			continue
		}
		if id, ok := toCategoryID(raw); ok {
			for i := range categories {
				if categories[i].ID == id {
					return &categories[i].ID
				}
			}
		}
		if name, ok := raw.(string); ok && name != "" {
			for i := range categories {
				if strings.EqualFold(categories[i].Name, name) {
					return &categories[i].ID
				}
			}
		}
	}
	for i := range categories {
		if categories[i].Type == txType {
			return &categories[i].ID
		}
	}
	return nil
}

func toCategoryID(v interface{}) (uint, bool) {
	switch val := v.(type) {
	case float64:
		if val > 0 && val == float64(uint(val)) {
			return uint(val), true
		}
	case string:
		if n, err := strconv.ParseUint(val, 10, 32); err == nil && n > 0 {
			return uint(n), true
		}
	}
	return 0, false
}
