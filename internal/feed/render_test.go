package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/feeds"
)

func fixedItems(now time.Time) []*feeds.Item {
	return []*feeds.Item{
		{
			Id:          "alice-sh600519-20260820",
			IsPermaLink: "false",
			Title:       "贵州茅台 1700.50（-1.25%）",
			Link:        &feeds.Link{Href: "https://xueqiu.com/S/SH600519"},
			Description: "<p>资金流（万元）：主力 1,235 万（↑流入）</p>",
			Created:     now,
			Updated:     now,
		},
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2026, 8, 20, 14, 30, 0, 0, time.FixedZone("CST", 8*3600))
	meta := Meta{
		Title:       "阿丽的自选",
		Link:        "https://example.com",
		Description: "北向资金 / 实时涨跌 订阅",
		TTLMinutes:  5,
	}

	xml, err := Render(meta, fixedItems(now), now)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	for _, want := range []string{
		"<title>阿丽的自选</title>",
		"<link>https://example.com</link>",
		"<language>zh-cn</language>",
		"<ttl>5</ttl>",
		"贵州茅台 1700.50（-1.25%）",
		`isPermaLink="false"`,
		"alice-sh600519-20260820",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("rendered feed missing %q", want)
		}
	}
}

// 固定输入 + 注入时钟：两次渲染必须逐字节一致。
func TestRender_Deterministic(t *testing.T) {
	now := time.Date(2026, 8, 20, 14, 30, 0, 0, time.FixedZone("CST", 8*3600))
	meta := Meta{Title: "t", Link: "https://example.com", Description: "d", TTLMinutes: 5}

	first, err := Render(meta, fixedItems(now), now)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	second, err := Render(meta, fixedItems(now), now)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if first != second {
		t.Error("render output not byte-stable for identical inputs")
	}
}

func TestRender_NoTTLWhenZero(t *testing.T) {
	now := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	xml, err := Render(Meta{Title: "t", Link: "l", Description: "d"}, nil, now)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(xml, "<ttl>") {
		t.Error("ttl should be omitted when not configured")
	}
}
