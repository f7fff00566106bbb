package models

import (
	"fmt"
	"strconv"
)

// PayloadField returns the first non-empty value among keys, stringified.
// Gateway payloads carry numeric ids either as strings or JSON numbers.
func PayloadField(payload map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		val, ok := payload[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case bool:
			return strconv.FormatBool(v)
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
