package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"stockrss/internal/model"
	"stockrss/pkg/stockcode"
)

// guid 时间键格式：条目按日去重，快照条目精确到分钟保证阅读器每轮识别更新
const (
	itemDayKey     = "20060102"
	snapshotMinKey = "200601021504"
)

// Compose 把一位用户的行情与资金流拼装为 RSS 条目：
//   - 每只股票一条，按规范代码关联 Quote 与 FundFlow；
//   - 没拿到任何快照时只写一条心跳条目，避免整份 RSS 缺失；
//   - 末尾固定追加实时快照条目（guid 含分钟时间戳）。
func Compose(userID, title, siteLink string, codes []string,
	quotes map[string]model.Quote, flows map[string]model.FundFlow,
	north *model.NorthboundOverview, now time.Time) []*feeds.Item {

	northline := NorthboundLine(north)

	if len(quotes) == 0 {
		return []*feeds.Item{
			heartbeatItem(siteLink, north, northline, now),
			snapshotItem(userID, title, siteLink, northline, len(codes), now),
		}
	}

	items := make([]*feeds.Item, 0, len(codes)+1)
	for _, code := range codes {
		q, hasQuote := quotes[code]
		f, hasFlow := flows[code]

		name := strings.ToUpper(code)
		if hasQuote && q.Name != "" {
			name = q.Name
		}

		var itemTitle string
		switch {
		case hasQuote && q.Price != nil && q.PctChg != nil:
			itemTitle = fmt.Sprintf("%s %.2f（%+.2f%%）", name, *q.Price, *q.PctChg)
		case hasQuote && q.Price != nil:
			itemTitle = fmt.Sprintf("%s %.2f", name, *q.Price)
		default:
			itemTitle = fmt.Sprintf("%s（行情暂不可用）", name)
		}

		var desc strings.Builder
		if hasFlow {
			fmt.Fprintf(&desc,
				"<p>资金流（万元）：主力 %s（%s） | 超大单 %s（%s） | 大单 %s（%s） | 中单 %s（%s） | 小单 %s（%s）</p>",
				FormatWanInt(f.MainWan), Arrow(f.MainWan),
				FormatWanInt(f.HugeWan), Arrow(f.HugeWan),
				FormatWanInt(f.LargeWan), Arrow(f.LargeWan),
				FormatWanInt(f.MediumWan), Arrow(f.MediumWan),
				FormatWanInt(f.SmallWan), Arrow(f.SmallWan))
		} else {
			desc.WriteString("<p>资金流（万元）：暂无数据</p>")
		}
		if hasQuote && q.AmountWan != nil {
			fmt.Fprintf(&desc, "<p>成交额：%s　时间：%s</p>", FormatAmount(q.AmountWan), q.Time)
		}
		fmt.Fprintf(&desc, "<p>%s</p>", northline)

		items = append(items, &feeds.Item{
			Id:          fmt.Sprintf("%s-%s-%s", userID, code, now.Format(itemDayKey)),
			IsPermaLink: "false",
			Title:       itemTitle,
			Link:        &feeds.Link{Href: stockLink(code)},
			Description: desc.String(),
			Created:     now,
			Updated:     now,
		})
	}

	items = append(items, snapshotItem(userID, title, siteLink, northline, len(codes), now))
	return items
}

// heartbeatItem 个股快照全部不可用时的兜底条目，让订阅方知道服务还活着。
func heartbeatItem(siteLink string, north *model.NorthboundOverview, northline string, now time.Time) *feeds.Item {
	total := Placeholder
	if north != nil && north.TotalYi != nil {
		total = fmt.Sprintf("%.2f", *north.TotalYi)
	}
	return &feeds.Item{
		Id:          fmt.Sprintf("heartbeat-%d", now.Unix()),
		IsPermaLink: "false",
		Title:       fmt.Sprintf("北向资金心跳 %s 亿元", total),
		Link:        &feeds.Link{Href: siteLink},
		Description: fmt.Sprintf("<p>个股快照暂不可用，稍后自动重试。</p><p>%s</p>", northline),
		Created:     now,
		Updated:     now,
	}
}

// snapshotItem 每轮生成都追加的快照条目，guid 按分钟变化。
func snapshotItem(userID, title, siteLink, northline string, stockCount int, now time.Time) *feeds.Item {
	desc := fmt.Sprintf("<ul><li>更新时间：%s</li><li>%s</li><li>覆盖股票数：%d</li></ul>",
		now.Format("2006-01-02 15:04:05"), northline, stockCount)
	return &feeds.Item{
		Id:          fmt.Sprintf("%s-snapshot-%s", userID, now.Format(snapshotMinKey)),
		IsPermaLink: "false",
		Title:       fmt.Sprintf("%s 实时快照 @ %s", title, now.Format("2006-01-02 15:04")),
		Link:        &feeds.Link{Href: siteLink},
		Description: desc,
		Created:     now,
		Updated:     now,
	}
}

// stockLink 跳转到雪球个股页，代码前缀转大写（sh600519 -> SH600519）。
func stockLink(code string) string {
	bare := stockcode.Bare(code)
	prefix := strings.ToUpper(strings.TrimSuffix(code, bare))
	return "https://xueqiu.com/S/" + prefix + bare
}
