// Package model 定义行情快照、资金流、北向资金概览等值对象。
// 数值字段统一用指针：上游接口失败或缺列时为 nil，由展示层兜底为占位符。
package model

// Quote 个股实时快照。
type Quote struct {
	Code      string   // 规范代码，如 sh600519
	Name      string   // 证券简称
	Price     *float64 // 最新价（元）
	PctChg    *float64 // 涨跌幅（%）
	AmountWan *float64 // 成交额（万元）
	Time      string   // 快照时间 YYYY-MM-DD HH:MM:SS
}

// FundFlow 个股当日资金净流入（万元），正=流入 负=流出。
type FundFlow struct {
	Code      string
	MainWan   *float64 // 主力
	HugeWan   *float64 // 超大单
	LargeWan  *float64 // 大单
	MediumWan *float64 // 中单
	SmallWan  *float64 // 小单
	Time      string
}

// NorthboundOverview 北向资金当日净流入（亿元）。
type NorthboundOverview struct {
	SHYi    *float64 // 沪股通
	SZYi    *float64 // 深股通
	TotalYi *float64 // 合计
	Time    string
}
