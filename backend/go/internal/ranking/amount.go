package ranking

import (
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`^([\d.]+)\s*([a-z]*)`)

// amountMultipliers 是金额后缀对应的倍数。
var amountMultipliers = map[string]float64{
	"m":     1_000_000,
	"mn":    1_000_000,
	"cr":    10_000_000,
	"crore": 10_000_000,
	"b":     1_000_000_000,
	"bn":    1_000_000_000,
}

// currencyPrefixes 在解析前去掉的货币标记。
var currencyPrefixes = []string{"₹", "$", "rs.", "rs", "inr"}

// ParseAmount 把 "₹50,00,000"、"2.5 Cr"、"$3M" 这类金额文本解析为整数。
// 无法识别的后缀按 1 倍计算；文本不以数字开头时返回 false。
func ParseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ToLower(s), ",", ""))
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			break
		}
	}
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	mult, ok := amountMultipliers[m[2]]
	if !ok {
		mult = 1
	}
	return int64(n * mult), true
}
