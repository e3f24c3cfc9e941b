package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"stockrss/internal/service"
)

// 请求头（模拟浏览器）
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer        = "https://quote.eastmoney.com/"
	acceptLanguage = "zh-CN,zh;q=0.9,en;q=0.8"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 1200 * time.Millisecond
)

// Client 是东方财富行情源的适配器。显式构造后注入各处，
// 不使用包级单例；地址与重试参数均可在配置中覆盖。
type Client struct {
	httpClient    *http.Client
	logger        *zap.Logger
	maxRetries    int
	retryDelay    time.Duration
	quoteURL      string
	fundFlowURL   string
	northboundURL string
}

// NewClient 按配置构造客户端；零值配置项回落到默认值。
func NewClient(cfg *service.ProviderConfig, logger *zap.Logger) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSec > 0 {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	delay := defaultRetryDelay
	if cfg.RetryDelayMS > 0 {
		delay = time.Duration(cfg.RetryDelayMS) * time.Millisecond
	}
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger.With(zap.String("provider", "eastmoney")),
		maxRetries:    retries,
		retryDelay:    delay,
		quoteURL:      cfg.QuoteURL,
		fundFlowURL:   cfg.FundFlowURL,
		northboundURL: cfg.NorthboundURL,
	}
}

// getJSON 带固定次数重试与固定间隔退避的 GET；返回完整响应体。
func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying request",
				zap.Int("attempt", attempt),
				zap.String("url", url),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Referer", referer)
		req.Header.Set("Accept", "application/json, text/plain, */*")
		req.Header.Set("Accept-Language", acceptLanguage)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("http %d", resp.StatusCode)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries, lastErr)
}
