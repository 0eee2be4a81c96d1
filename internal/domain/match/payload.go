package match

import (
	"strconv"
	"strings"
	"time"
)

// Payload is one decoded match object as returned by the backend, in any supported API shape.
type Payload map[string]any

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// getID reads an identifier that may be encoded as a string or a number.
func getID(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	switch typed := src[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatInt(int64(typed), 10)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}

func getIDAny(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := getID(src, key); value != "" {
			return value
		}
	}
	return ""
}

// getInt reports ok=false when the key is absent, null or not numeric.
func getInt(src map[string]any, key string) (int, bool) {
	if src == nil {
		return 0, false
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch typed := raw.(type) {
	case float64:
		return int(typed), true
	case float32:
		return int(typed), true
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case string:
		v, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func getIntAny(src map[string]any, keys ...string) (int, bool) {
	for _, key := range keys {
		if value, ok := getInt(src, key); ok {
			return value, true
		}
	}
	return 0, false
}

func relationDataMap(raw any) map[string]any {
	if raw == nil {
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

func parseDateTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
