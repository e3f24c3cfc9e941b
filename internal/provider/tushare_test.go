package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"stockrss/internal/service"
)

const tushareTestEnv = "STOCKRSS_TEST_TUSHARE_TOKEN"

func newTushareTestClient(t *testing.T, handler http.Handler) *TushareClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &service.ProviderConfig{
		TushareURL:      srv.URL,
		TushareTokenEnv: tushareTestEnv,
		TimeoutSec:      2,
	}
	return NewTushareClient(cfg, zap.NewNop())
}

func TestTushareNorthbound(t *testing.T) {
	t.Setenv(tushareTestEnv, "testtoken123")
	body := `{"code":0,"data":{
	  "fields":["trade_date","sh_net","sz_net","hsgt_net"],
	  "items":[["20260820",12.345,-3.456,8.889],["20260819",1,1,2]]}}`
	c := newTushareTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_, _ = w.Write([]byte(body))
	}))

	n, err := c.Northbound(context.Background())
	if err != nil {
		t.Fatalf("Northbound returned error: %v", err)
	}
	if n.SHYi == nil || *n.SHYi != 12.35 {
		t.Errorf("SHYi = %v, want 12.35", n.SHYi)
	}
	if n.SZYi == nil || *n.SZYi != -3.46 {
		t.Errorf("SZYi = %v, want -3.46", n.SZYi)
	}
	if n.TotalYi == nil || *n.TotalYi != 8.89 {
		t.Errorf("TotalYi = %v, want 8.89", n.TotalYi)
	}
}

// 老版本列名（hgt/sgt/north_money）也要能解析。
func TestTushareNorthbound_LegacyColumns(t *testing.T) {
	t.Setenv(tushareTestEnv, "testtoken123")
	body := `{"code":0,"data":{
	  "fields":["trade_date","hgt","sgt","north_money"],
	  "items":[["20260820",5,5,10]]}}`
	c := newTushareTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))

	n, err := c.Northbound(context.Background())
	if err != nil {
		t.Fatalf("Northbound returned error: %v", err)
	}
	if n.TotalYi == nil || *n.TotalYi != 10 {
		t.Errorf("TotalYi = %v, want 10", n.TotalYi)
	}
}

func TestTushareNorthbound_MissingToken(t *testing.T) {
	t.Setenv(tushareTestEnv, "")
	c := newTushareTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without token")
	}))

	_, err := c.Northbound(context.Background())
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestTushareNorthbound_APIError(t *testing.T) {
	t.Setenv(tushareTestEnv, "testtoken123")
	c := newTushareTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":40001,"msg":"token invalid"}`))
	}))

	_, err := c.Northbound(context.Background())
	if err == nil {
		t.Fatal("expected error for non-zero code")
	}
	if errors.Is(err, ErrNoData) {
		t.Error("API error should not be classified as ErrNoData")
	}
}

func TestTushareNorthbound_EmptyItems(t *testing.T) {
	t.Setenv(tushareTestEnv, "testtoken123")
	c := newTushareTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"data":{"fields":["trade_date"],"items":[]}}`))
	}))

	_, err := c.Northbound(context.Background())
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
