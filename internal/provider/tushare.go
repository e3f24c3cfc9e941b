package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"stockrss/internal/model"
	"stockrss/internal/service"
)

const tushareAPIName = "moneyflow_hsgt"

// tushare 返回列按名索引，列名随接口版本演进过，按新旧排序。
var (
	tushareSHCols    = []string{"sh_net", "hgt"}
	tushareSZCols    = []string{"sz_net", "sgt"}
	tushareTotalCols = []string{"hsgt_net", "north_money"}
)

// TushareClient 是北向概览的备用数据源。token 首次使用时从环境变量读取，
// 进程生命周期内缓存。
type TushareClient struct {
	httpClient *http.Client
	logger     *zap.Logger
	url        string
	tokenEnv   string

	tokenOnce sync.Once
	token     string
}

func NewTushareClient(cfg *service.ProviderConfig, logger *zap.Logger) *TushareClient {
	timeout := defaultTimeout
	if cfg.TimeoutSec > 0 {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}
	return &TushareClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("provider", "tushare")),
		url:        cfg.TushareURL,
		tokenEnv:   cfg.TushareTokenEnv,
	}
}

func (c *TushareClient) loadToken() string {
	c.tokenOnce.Do(func() {
		c.token = os.Getenv(c.tokenEnv)
		if c.token == "" {
			c.logger.Warn("tushare token not set, fallback source disabled",
				zap.String("env", c.tokenEnv))
		}
	})
	return c.token
}

// Northbound 调 moneyflow_hsgt 取最新一行；净流入单位为亿元。
func (c *TushareClient) Northbound(ctx context.Context) (*model.NorthboundOverview, error) {
	token := c.loadToken()
	if token == "" {
		return nil, fmt.Errorf("%w: tushare token missing", ErrNoData)
	}
	payload := map[string]any{
		"api_name": tushareAPIName,
		"token":    token,
		"params":   map[string]any{},
		"fields":   "trade_date,sh_net,sz_net,hsgt_net",
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tushare northbound: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tushare northbound: http %d", resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("tushare northbound: %w", err)
	}
	return parseTushareNorthbound(buf.Bytes())
}

func parseTushareNorthbound(body []byte) (*model.NorthboundOverview, error) {
	root := gjson.ParseBytes(body)
	if code := root.Get("code"); code.Exists() && code.Int() != 0 {
		return nil, fmt.Errorf("tushare error: %s", root.Get("msg").String())
	}
	fields := root.Get("data.fields").Array()
	items := root.Get("data.items").Array()
	if len(fields) == 0 || len(items) == 0 {
		return nil, fmt.Errorf("%w: tushare empty result", ErrNoData)
	}
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.String()] = i
	}
	// items 按 trade_date 倒序，第一行即最新
	row := items[0].Array()
	pick := func(cols []string) *float64 {
		for _, col := range cols {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				continue
			}
			r := row[i]
			if r.Type == gjson.Number {
				return service.Float64(service.Round2(r.Float()))
			}
			if r.Type == gjson.String {
				if f := service.ToFloat(r.String()); f != nil {
					return service.Float64(service.Round2(*f))
				}
			}
		}
		return nil
	}
	sh := pick(tushareSHCols)
	sz := pick(tushareSZCols)
	total := pick(tushareTotalCols)
	if total == nil && sh != nil && sz != nil {
		total = service.Float64(service.Round2(*sh + *sz))
	}
	if sh == nil && sz == nil && total == nil {
		return nil, fmt.Errorf("%w: tushare columns missing", ErrNoData)
	}
	return &model.NorthboundOverview{
		SHYi:    sh,
		SZYi:    sz,
		TotalYi: total,
		Time:    time.Now().In(service.Shanghai()).Format(service.TimeLayout),
	}, nil
}
