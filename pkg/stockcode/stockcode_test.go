package stockcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"shanghai main board", "600519", "sh600519"},
		{"shanghai fund", "510300", "sh510300"},
		{"shanghai b share", "900901", "sh900901"},
		{"shenzhen main board", "000001", "sz000001"},
		{"shenzhen chinext", "300750", "sz300750"},
		{"already prefixed sh", "sh600519", "sh600519"},
		{"already prefixed sz", "sz000001", "sz000001"},
		{"uppercase prefix", "SH600519", "sh600519"},
		{"surrounding spaces", " 600519 ", "sh600519"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// 对所有首位数字，裸 6 位代码的归一化必须总是成功且幂等。
func TestNormalize_TotalAndIdempotent(t *testing.T) {
	for d := 0; d <= 9; d++ {
		code := fmt.Sprintf("%d00123", d)
		first, err := Normalize(code)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", code, err)
		}
		second, err := Normalize(first)
		if err != nil {
			t.Fatalf("Normalize(%q) (re-applied) returned error: %v", first, err)
		}
		if first != second {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", code, first, second)
		}
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too short", "60051"},
		{"too long bare", "6005190"},
		{"non numeric", "60051a"},
		{"unknown prefix", "bj430047"},
		{"prefix with short body", "sh6005"},
		{"prefix with letters", "sh60051x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.in)
			if err == nil {
				t.Fatalf("Normalize(%q) expected error, got nil", tt.in)
			}
			if !errors.Is(err, ErrInvalidCode) {
				t.Errorf("Normalize(%q) error = %v, want ErrInvalidCode", tt.in, err)
			}
		})
	}
}

func TestSecID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sh600519", "1.600519"},
		{"sz000001", "0.000001"},
		{"sz300750", "0.300750"},
	}

	for _, tt := range tests {
		if got := SecID(tt.in); got != tt.want {
			t.Errorf("SecID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBare(t *testing.T) {
	if got := Bare("sh600519"); got != "600519" {
		t.Errorf("Bare(sh600519) = %q, want 600519", got)
	}
	if got := Bare("sz000001"); got != "000001" {
		t.Errorf("Bare(sz000001) = %q, want 000001", got)
	}
}
