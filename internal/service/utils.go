package service

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeLayout 行情时间戳的统一展示格式
const TimeLayout = "2006-01-02 15:04:05"

// ToFloat 宽容解析数字字符串：去千分位逗号、容忍百分号结尾。
// 空串、"-"（东方财富停牌占位）或解析失败返回 nil。
func ToFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Round2 保留两位小数
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Float64 取指针，便于构造测试数据与可选字段
func Float64(f float64) *float64 {
	return &f
}

var shanghaiTZ = loadShanghaiTZ()

// 系统缺 tzdata 时退化为固定 +8
func loadShanghaiTZ() *time.Location {
	if loc, err := time.LoadLocation("Asia/Shanghai"); err == nil {
		return loc
	}
	return time.FixedZone("CST", 8*60*60)
}

// Shanghai 返回上海时区，行情时间戳统一用它格式化
func Shanghai() *time.Location {
	return shanghaiTZ
}
