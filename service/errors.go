package service

import "errors"

// 核心错误分类：处理器据此映射 HTTP 状态码
var (
	// ErrNotFound 引用的账户/类别/交易不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrInvalidRequest 缺少必填字段或字段值非法
	ErrInvalidRequest = errors.New("请求参数错误")
)
