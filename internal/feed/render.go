package feed

import (
	"time"

	"github.com/gorilla/feeds"
)

// Meta 频道级元信息
type Meta struct {
	Title       string
	Link        string
	Description string
	TTLMinutes  int
}

// Render 把条目包装为 RSS 2.0 文档。now 由调用方注入，
// 固定输入加固定时钟时输出逐字节稳定。
func Render(meta Meta, items []*feeds.Item, now time.Time) (string, error) {
	f := &feeds.Feed{
		Title:       meta.Title,
		Link:        &feeds.Link{Href: meta.Link},
		Description: meta.Description,
		Created:     now,
		Updated:     now,
		Items:       items,
	}
	rss := (&feeds.Rss{Feed: f}).RssFeed()
	rss.Language = "zh-cn"
	if meta.TTLMinutes > 0 {
		rss.Ttl = meta.TTLMinutes
	}
	return feeds.ToXML(rss)
}
