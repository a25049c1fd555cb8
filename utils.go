package stride

import (
	"strconv"
	"strings"
	"unsafe"
)

// b2s converts a byte slice to a string without copying. The caller must
// not mutate b afterwards.
func b2s(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

// s2b converts a string to a byte slice without copying. The result must
// never be written to.
func s2b(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// toType tries to convert a string to a primitive type T.
// If s does not parse, it returns the zero value of T. A number that parses
// but is out of range for T yields the bound strconv reports (for example
// the largest int, or +Inf for floats), not zero.
func toType[T any](s string) T {
	var zero T
	switch any(zero).(type) {
	case int:
		v, _ := strconv.Atoi(s)
		return any(v).(T)
	case int64:
		v, _ := strconv.ParseInt(s, 10, 64)
		return any(v).(T)
	case int32:
		v, _ := strconv.ParseInt(s, 10, 32)
		return any(int32(v)).(T)
	case int16:
		v, _ := strconv.ParseInt(s, 10, 16)
		return any(int16(v)).(T)
	case int8:
		v, _ := strconv.ParseInt(s, 10, 8)
		return any(int8(v)).(T)
	case uint:
		v, _ := strconv.ParseUint(s, 10, 64)
		return any(uint(v)).(T)
	case uint64:
		v, _ := strconv.ParseUint(s, 10, 64)
		return any(v).(T)
	case uint32:
		v, _ := strconv.ParseUint(s, 10, 32)
		return any(uint32(v)).(T)
	case uint16:
		v, _ := strconv.ParseUint(s, 10, 16)
		return any(uint16(v)).(T)
	case uint8:
		v, _ := strconv.ParseUint(s, 10, 8)
		return any(uint8(v)).(T)
	case float64:
		v, _ := strconv.ParseFloat(s, 64)
		return any(v).(T)
	case float32:
		v, _ := strconv.ParseFloat(s, 32)
		return any(float32(v)).(T)
	case bool:
		v, _ := strconv.ParseBool(strings.ToLower(s))
		return any(v).(T)
	case string:
		return any(s).(T)
	default:
		return zero
	}
}
