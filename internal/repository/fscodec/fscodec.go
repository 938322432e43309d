// Package fscodec normalizes loosely-typed values read from Firestore
// documents. Store-sourced timestamps in particular have arrived in
// several shapes over time (native timestamps, RFC3339 strings, unix
// epochs); everything is converted to canonical UTC time.Time at this
// boundary before business logic sees it.
package fscodec

import (
	"strconv"
	"strings"
	"time"
)

// unix values above this are treated as milliseconds rather than seconds.
const millisCutoff = int64(1) << 40

// AsTime converts a raw document value to UTC time. The second return is
// false when the value has no usable time representation.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return parsed.UTC(), true
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			return parsed.UTC(), true
		}
		return time.Time{}, false
	case int64:
		return epochToTime(t)
	case int:
		return epochToTime(int64(t))
	case float64:
		return epochToTime(int64(t))
	default:
		return time.Time{}, false
	}
}

func epochToTime(n int64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	if n >= millisCutoff {
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}

// AsInt converts a raw document value to int. Firestore hands numbers
// back as int64 or float64 depending on how they were written.
func AsInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// AsInt64 converts a raw document value to int64.
func AsInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// AsString converts a raw document value to string; non-strings yield "".
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsStringMap converts a raw document map value to map[string]string,
// dropping non-string entries.
func AsStringMap(v any) map[string]string {
	raw, ok := v.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, val := range raw {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
