// Package builder 驱动整条流水线：遍历用户配置，逐个拉数据、拼条目、渲染并落盘。
package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"stockrss/internal/feed"
	"stockrss/internal/model"
	"stockrss/internal/provider"
	"stockrss/internal/service"
	"stockrss/internal/user"
)

const outputDirPerm = 0o755

// Builder 批量生成器。行情源通过接口注入，可替换。
type Builder struct {
	cfg      *service.Config
	market   provider.MarketData
	fallback provider.NorthboundSource // 可为 nil
	logger   *zap.Logger
	now      func() time.Time // 注入时钟，测试用
}

func New(cfg *service.Config, market provider.MarketData, fallback provider.NorthboundSource, logger *zap.Logger) *Builder {
	return &Builder{
		cfg:      cfg,
		market:   market,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

// Run 主流程：北向概览一轮拉一次，用户逐个生成。
// 单个用户失败只记日志不中断其余用户；返回成功写出的文件名。
func (b *Builder) Run(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(b.cfg.OutputDir, outputDirPerm); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	users, err := user.LoadDir(b.cfg.UsersDir, b.logger)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		b.logger.Warn("no valid user configs found", zap.String("dir", b.cfg.UsersDir))
		return nil, nil
	}

	north := b.northbound(ctx)

	generated := make([]string, 0, len(users))
	for _, u := range users {
		name, err := b.buildOne(ctx, u, north)
		if err != nil {
			b.logger.Error("feed generation failed",
				zap.String("user", u.UserID),
				zap.Error(err))
			continue
		}
		b.logger.Info("feed written",
			zap.String("user", u.UserID),
			zap.String("file", name))
		generated = append(generated, name)
	}
	b.logger.Info("batch done", zap.Int("users", len(users)), zap.Int("generated", len(generated)))
	return generated, nil
}

// northbound 主源失败时切备用源；两边都失败返回 nil，由展示层兜底。
func (b *Builder) northbound(ctx context.Context) *model.NorthboundOverview {
	n, err := b.market.Northbound(ctx)
	if err == nil {
		return n
	}
	b.logger.Warn("northbound primary source failed", zap.Error(err))
	if b.fallback == nil {
		return nil
	}
	n, err = b.fallback.Northbound(ctx)
	if err != nil {
		b.logger.Warn("northbound fallback source failed", zap.Error(err))
		return nil
	}
	return n
}

func (b *Builder) buildOne(ctx context.Context, u *user.Config, north *model.NorthboundOverview) (string, error) {
	now := b.now().In(service.Shanghai())

	quotes := b.fetchQuotes(ctx, u)
	flows := b.fetchFlows(ctx, u)

	items := feed.Compose(u.UserID, u.Title, b.cfg.Feed.SiteLink,
		u.Stocks, quotes, flows, north, now)

	meta := feed.Meta{
		Title:       u.Title,
		Link:        b.cfg.Feed.SiteLink,
		Description: b.cfg.Feed.Description,
		TTLMinutes:  b.cfg.Feed.TTLMinutes,
	}
	xml, err := feed.Render(meta, items, now)
	if err != nil {
		return "", fmt.Errorf("render feed: %w", err)
	}

	name := fmt.Sprintf("%s-%s.xml", u.UserID, u.Token)
	path := filepath.Join(b.cfg.OutputDir, name)
	if err := os.WriteFile(path, []byte(xml), 0o644); err != nil {
		return "", fmt.Errorf("write feed file: %w", err)
	}
	return name, nil
}

// fetchQuotes 行情失败吞掉错误返回空集合，展示层写心跳条目。
func (b *Builder) fetchQuotes(ctx context.Context, u *user.Config) map[string]model.Quote {
	if len(u.Stocks) == 0 {
		return nil
	}
	quotes, err := b.market.RealtimeQuotes(ctx, u.Stocks)
	if err != nil {
		level := b.logger.Warn
		if errors.Is(err, provider.ErrNoData) {
			level = b.logger.Info
		}
		level("realtime quotes unavailable", zap.String("user", u.UserID), zap.Error(err))
		return nil
	}
	return quotes
}

func (b *Builder) fetchFlows(ctx context.Context, u *user.Config) map[string]model.FundFlow {
	if len(u.Stocks) == 0 {
		return nil
	}
	flows, err := b.market.FundFlows(ctx, u.Stocks)
	if err != nil {
		level := b.logger.Warn
		if errors.Is(err, provider.ErrNoData) {
			level = b.logger.Info
		}
		level("fund flows unavailable", zap.String("user", u.UserID), zap.Error(err))
		return nil
	}
	return flows
}
