// Package stockcode 处理 A 股证券代码：裸 6 位代码补全交易所前缀、转换东方财富 secid。
package stockcode

import (
	"errors"
	"fmt"
	"strings"
)

// 交易所前缀
const (
	PrefixShanghai = "sh"
	PrefixShenzhen = "sz"
)

const codeDigits = 6

// ErrInvalidCode 输入既不是裸 6 位数字也不是带 sh/sz 前缀的合法代码。
var ErrInvalidCode = errors.New("invalid stock code")

// 上海：6 主板、5 基金/B 股、9 B 股；其余归深圳
var shanghaiLeading = map[byte]bool{'6': true, '5': true, '9': true}

// Normalize 把裸 6 位代码按首位数字补全交易所前缀；已带 sh/sz 前缀的
// 统一小写后原样返回。对裸 6 位输入总是成功且幂等，其余输入返回 ErrInvalidCode。
func Normalize(raw string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(raw))
	if len(c) == len(PrefixShanghai)+codeDigits &&
		(strings.HasPrefix(c, PrefixShanghai) || strings.HasPrefix(c, PrefixShenzhen)) &&
		allDigits(c[2:]) {
		return c, nil
	}
	if len(c) == codeDigits && allDigits(c) {
		if shanghaiLeading[c[0]] {
			return PrefixShanghai + c, nil
		}
		return PrefixShenzhen + c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCode, raw)
}

// SecID 转为东方财富 secid：sh600519 -> 1.600519，sz000001 -> 0.000001。
// 入参必须是 Normalize 的输出。
func SecID(canonical string) string {
	if strings.HasPrefix(canonical, PrefixShanghai) {
		return "1." + strings.TrimPrefix(canonical, PrefixShanghai)
	}
	return "0." + strings.TrimPrefix(canonical, PrefixShenzhen)
}

// Bare 去掉交易所前缀，返回 6 位数字部分。
func Bare(canonical string) string {
	return strings.TrimPrefix(strings.TrimPrefix(canonical, PrefixShanghai), PrefixShenzhen)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
