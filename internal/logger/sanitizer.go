package logger

import (
	"encoding/json"
	"strings"
)

const maskedValue = "******"

var sensitiveKeys = map[string]struct{}{
	"pin":             {},
	"password":        {},
	"channelkey":      {},
	"channel_key":     {},
	"transactionpin":  {},
	"transaction_pin": {},
}

// SanitizePayload round-trips the payload through JSON and masks values under
// sensitive keys. Used before logging request or response bodies.
func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = maskedValue
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
