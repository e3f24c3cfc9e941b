package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"stockrss/internal/model"
	"stockrss/internal/service"
	"stockrss/pkg/stockcode"
)

// ulist 接口请求字段：f2 最新价 f3 涨跌幅(%) f6 成交额(元) f12 代码 f13 市场 f14 名称 f124 时间戳
const quoteFields = "f2,f3,f6,f12,f13,f14,f124"

// 资金流字段（单位：元）：f62 主力 f66 超大单 f72 大单 f78 中单 f84 小单
const fundFlowFields = "f12,f13,f62,f66,f72,f78,f84,f124"

// 东方财富市场标识：1 上海，0 深圳
const marketShanghai = 1

// 单位换算：元 -> 万元，万元 -> 亿元
const wanDivisor = 1e4

// 北向概览字段别名，按接口版本新旧排序，先匹配的生效。
// 顺序即优先级，调整会改变版本兼容行为。
var (
	northSHPaths    = []string{"data.hk2sh.dayNetAmtIn", "data.hk2sh.netBuyAmt", "data.sh2hk.dayNetAmtIn"}
	northSZPaths    = []string{"data.hk2sz.dayNetAmtIn", "data.hk2sz.netBuyAmt", "data.sz2hk.dayNetAmtIn"}
	northTotalPaths = []string{"data.north.dayNetAmtIn", "data.n2s.dayNetAmtIn"}
)

// pickFloat 按优先级在解码后的 JSON 中找第一个能解析出数值的路径。
func pickFloat(v gjson.Result, paths ...string) *float64 {
	for _, p := range paths {
		r := v.Get(p)
		if !r.Exists() {
			continue
		}
		switch r.Type {
		case gjson.Number:
			f := r.Float()
			return &f
		case gjson.String:
			if f := service.ToFloat(r.String()); f != nil {
				return f
			}
		}
	}
	return nil
}

// RealtimeQuotes 批量拉取个股快照，按规范代码索引返回。
// 返回空集合时报 ErrNoData，由上层兜底为心跳条目。
func (c *Client) RealtimeQuotes(ctx context.Context, codes []string) (map[string]model.Quote, error) {
	out := make(map[string]model.Quote, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	body, err := c.getJSON(ctx, c.ulistURL(c.quoteURL, codes, quoteFields))
	if err != nil {
		return nil, fmt.Errorf("realtime quotes: %w", err)
	}
	wanted := bareToCanonical(codes)
	diff := gjson.GetBytes(body, "data.diff")
	if !diff.Exists() {
		return nil, fmt.Errorf("%w: quotes missing data.diff", ErrNoData)
	}
	// diff 可能是数组，也可能是 {"0":{...},"1":{...}} 形式的对象
	diff.ForEach(func(_, v gjson.Result) bool {
		code := canonicalFromItem(v, wanted)
		if code == "" {
			return true
		}
		var amountWan *float64
		if amt := pickFloat(v, "f6"); amt != nil {
			amountWan = service.Float64(service.Round2(*amt / wanDivisor))
		}
		out[code] = model.Quote{
			Code:      code,
			Name:      v.Get("f14").String(),
			Price:     pickFloat(v, "f2"),
			PctChg:    pickFloat(v, "f3"),
			AmountWan: amountWan,
			Time:      c.snapshotTime(v),
		}
		return true
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no quotes matched", ErrNoData)
	}
	return out, nil
}

// FundFlows 批量拉取个股当日资金净流入，单位统一为万元。
func (c *Client) FundFlows(ctx context.Context, codes []string) (map[string]model.FundFlow, error) {
	out := make(map[string]model.FundFlow, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	body, err := c.getJSON(ctx, c.ulistURL(c.fundFlowURL, codes, fundFlowFields))
	if err != nil {
		return nil, fmt.Errorf("fund flows: %w", err)
	}
	wanted := bareToCanonical(codes)
	diff := gjson.GetBytes(body, "data.diff")
	if !diff.Exists() {
		return nil, fmt.Errorf("%w: fund flows missing data.diff", ErrNoData)
	}
	diff.ForEach(func(_, v gjson.Result) bool {
		code := canonicalFromItem(v, wanted)
		if code == "" {
			return true
		}
		out[code] = model.FundFlow{
			Code:      code,
			MainWan:   yuanToWan(pickFloat(v, "f62")),
			HugeWan:   yuanToWan(pickFloat(v, "f66")),
			LargeWan:  yuanToWan(pickFloat(v, "f72")),
			MediumWan: yuanToWan(pickFloat(v, "f78")),
			SmallWan:  yuanToWan(pickFloat(v, "f84")),
			Time:      c.snapshotTime(v),
		}
		return true
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no fund flows matched", ErrNoData)
	}
	return out, nil
}

// Northbound 读取沪股通/深股通/合计当日净流入，接口返回万元，换算为亿元。
func (c *Client) Northbound(ctx context.Context) (*model.NorthboundOverview, error) {
	url := c.northboundURL + "?fields1=f1,f2,f3,f4&fields2=f51,f52,f53,f54,f55,f56"
	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("northbound: %w", err)
	}
	root := gjson.ParseBytes(body)
	sh := wanToYi(pickFloat(root, northSHPaths...))
	sz := wanToYi(pickFloat(root, northSZPaths...))
	total := wanToYi(pickFloat(root, northTotalPaths...))
	if total == nil && sh != nil && sz != nil {
		total = service.Float64(service.Round2(*sh + *sz))
	}
	if sh == nil && sz == nil && total == nil {
		return nil, fmt.Errorf("%w: northbound fields missing", ErrNoData)
	}
	return &model.NorthboundOverview{
		SHYi:    sh,
		SZYi:    sz,
		TotalYi: total,
		Time:    time.Now().In(service.Shanghai()).Format(service.TimeLayout),
	}, nil
}

func (c *Client) ulistURL(base string, codes []string, fields string) string {
	secids := make([]string, 0, len(codes))
	for _, code := range codes {
		secids = append(secids, stockcode.SecID(code))
	}
	return fmt.Sprintf("%s?fltt=2&invt=2&secids=%s&fields=%s", base, strings.Join(secids, ","), fields)
}

// canonicalFromItem 还原规范代码：优先按 f13 市场位拼前缀，
// 缺 f13 的旧版本接口回退到请求方提供的映射。
func canonicalFromItem(v gjson.Result, wanted map[string]string) string {
	bare := v.Get("f12").String()
	if bare == "" {
		return ""
	}
	if m := v.Get("f13"); m.Exists() {
		if m.Int() == marketShanghai {
			return stockcode.PrefixShanghai + bare
		}
		return stockcode.PrefixShenzhen + bare
	}
	return wanted[bare]
}

// snapshotTime 取条目时间戳（秒），缺失时用当前时间。
func (c *Client) snapshotTime(v gjson.Result) string {
	if ts := pickFloat(v, "f124", "f86"); ts != nil && *ts > 0 {
		return time.Unix(int64(*ts), 0).In(service.Shanghai()).Format(service.TimeLayout)
	}
	return time.Now().In(service.Shanghai()).Format(service.TimeLayout)
}

func bareToCanonical(codes []string) map[string]string {
	m := make(map[string]string, len(codes))
	for _, code := range codes {
		m[stockcode.Bare(code)] = code
	}
	return m
}

func yuanToWan(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return service.Float64(service.Round2(*v / wanDivisor))
}

func wanToYi(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return service.Float64(service.Round2(*v / wanDivisor))
}
