// Package conv 提供类型转换的泛型工具，用于简化各模块中的重复逻辑。
// JSON 解码得到的 cell 值是 any（数字统一为 float64），此包负责安全取值。
package conv

import (
	"fmt"
	"strconv"
)

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32、json.Number 风格的 string 不做转换；
// bool 视为 1.0/0.0。
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

// ToInt 将 any 转为 int。
// 支持 int、int64、int32、float64、float32。
func ToInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		return int(val), true
	case float32:
		return int(val), true
	default:
		return 0, false
	}
}

// ToString 将 any 转为 string。
// 仅支持 string 类型，否则返回 ("", false)。
func ToString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ToRawID 将 any 转为原始 ID 字符串。
// string 直接保留；整数值格式化为十进制；其他浮点用 %v。
// JSON 中的数字 ID（如 MovieLens 的 movieId）统一落在这里。
func ToRawID(v any) (string, bool) {
	if s, ok := ToString(v); ok {
		return s, true
	}
	f, ok := ToFloat64(v)
	if !ok {
		return "", false
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10), true
	}
	return fmt.Sprintf("%v", f), true
}
