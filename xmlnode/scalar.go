package xmlnode

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInt8 parses a decimal byte.
func ParseInt8(s string) (int8, error) {
	v, err := parseInt(s, 8, "int8")
	return int8(v), err
}

// ParseInt16 parses a decimal short.
func ParseInt16(s string) (int16, error) {
	v, err := parseInt(s, 16, "int16")
	return int16(v), err
}

// ParseInt32 parses a decimal int.
func ParseInt32(s string) (int32, error) {
	v, err := parseInt(s, 32, "int32")
	return int32(v), err
}

// ParseInt64 parses a decimal long.
func ParseInt64(s string) (int64, error) {
	return parseInt(s, 64, "int64")
}

func parseInt(s string, bitSize int, typ string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, bitSize)
	if err != nil {
		return 0, &WrongTypeError{Value: s, Type: typ, Err: err}
	}
	return v, nil
}

// ParseFloat32 parses a float. Surrounding whitespace is ignored.
func ParseFloat32(s string) (float32, error) {
	v, err := parseFloat(s, 32, "float32")
	return float32(v), err
}

// ParseFloat64 parses a double. Surrounding whitespace is ignored.
func ParseFloat64(s string) (float64, error) {
	return parseFloat(s, 64, "float64")
}

func parseFloat(s string, bitSize int, typ string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), bitSize)
	if err != nil {
		return 0, &WrongTypeError{Value: s, Type: typ, Err: err}
	}
	return v, nil
}

// ParseBool accepts "true" and "false" in any letter case. Digits, single
// letters and surrounding whitespace are a WrongTypeError.
func ParseBool(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	return false, &WrongTypeError{Value: s, Type: "bool"}
}

// FormatValue renders a value as element or attribute text. nil renders as
// "null" and floats use the shortest representation that round-trips.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}
