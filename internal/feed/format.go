// Package feed 把行情与资金流拼装成 RSS 条目并渲染为 RSS 2.0 文档。
package feed

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"stockrss/internal/model"
)

// Placeholder 数值缺失时的统一占位符
const Placeholder = "—"

// 成交额展示阈值：万元 -> 亿元
const wanPerYi = 1e4

// 千分位格式化
var printer = message.NewPrinter(language.SimplifiedChinese)

// FormatWanInt 万元取整展示，带千分位，保留正负号。
func FormatWanInt(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return printer.Sprintf("%d 万", int64(math.Round(*v)))
}

// Arrow 资金流方向：↑流入 / ↓流出 / —
func Arrow(v *float64) string {
	if v == nil {
		return Placeholder
	}
	switch {
	case *v > 0:
		return "↑流入"
	case *v < 0:
		return "↓流出"
	default:
		return Placeholder
	}
}

// FormatAmount 成交额（万元）的友好展示：达到 1 亿显示为 x.xx 亿，否则整数万。
func FormatAmount(v *float64) string {
	if v == nil {
		return Placeholder
	}
	yi := *v / wanPerYi
	if math.Abs(yi) >= 1 {
		return fmt.Sprintf("%.2f 亿", yi)
	}
	return fmt.Sprintf("%.0f 万", *v)
}

// formatYi 亿元两位小数
func formatYi(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.2f", *v)
}

// NorthboundLine 北向概览摘要行，所有条目共用；不可用时给出占位提示。
func NorthboundLine(n *model.NorthboundOverview) string {
	if n == nil || n.TotalYi == nil {
		return "北向资金：接口暂不可用 / 闭市"
	}
	return fmt.Sprintf("北向资金（亿元）｜沪股通 %s｜深股通 %s｜合计 %s｜时间 %s",
		formatYi(n.SHYi), formatYi(n.SZYi), formatYi(n.TotalYi), n.Time)
}
