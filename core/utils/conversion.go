package utils

import (
	"fmt"
	"strconv"
)

// ToString converts various types to string. Floats that carry an integral
// value (the usual result of decoding a JSON number) are rendered without
// an exponent or fraction.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return ToString(float64(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}
