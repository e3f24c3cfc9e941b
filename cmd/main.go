package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"stockrss/internal/builder"
	"stockrss/internal/provider"
	"stockrss/internal/service"
)

// 单轮批量生成的总超时
const runTimeout = 3 * time.Minute

func main() {
	service.InitLogger()
	defer service.Logger.Sync()

	configPath := "config"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		service.Logger.Fatal("Configuration directory 'config/' not found. Please create it.")
	}
	cfg := service.LoadConfig(configPath)

	// 显式构造行情客户端并注入，北向概览配 tushare 备用源
	eastmoney := provider.NewClient(&cfg.Provider, service.Logger)
	tushare := provider.NewTushareClient(&cfg.Provider, service.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	b := builder.New(cfg, eastmoney, tushare, service.Logger)
	generated, err := b.Run(ctx)
	if err != nil {
		service.Logger.Fatal("batch run failed", zap.Error(err))
	}
	service.Logger.Info("generated feeds", zap.Strings("files", generated))
}
