// Package provider 封装外部行情数据源：东方财富实时快照/资金流/北向概览，
// tushare 北向备用源。含重试、请求头伪装与字段别名兼容。
package provider

import (
	"context"
	"errors"

	"stockrss/internal/model"
)

// ErrNoData 表示请求成功但没有可用数据（闭市、空结果、字段别名全不匹配）。
// 上层据此与传输/解析错误区分，两类都兜底为占位展示。
var ErrNoData = errors.New("provider: no data")

// MarketData 是管线依赖的行情数据契约；具体来源可替换，
// 上层只依赖 model 中的值对象。
type MarketData interface {
	RealtimeQuotes(ctx context.Context, codes []string) (map[string]model.Quote, error)
	FundFlows(ctx context.Context, codes []string) (map[string]model.FundFlow, error)
	Northbound(ctx context.Context) (*model.NorthboundOverview, error)
}

// NorthboundSource 仅提供北向概览，用作主源失败后的备用数据源。
type NorthboundSource interface {
	Northbound(ctx context.Context) (*model.NorthboundOverview, error)
}
