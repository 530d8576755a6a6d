package repositories

import (
	"encoding/json"
	"time"
)

// Coercion helpers for the generic map rows produced by FetchDataAndCount.
// pgx surfaces integer columns with driver-dependent widths, so everything
// funnels through these before landing in a DTO.

func asUint64(v interface{}) uint64 {
	switch n := v.(type) {
	case int64:
		return uint64(n)
	case int32:
		return uint64(n)
	case int:
		return uint64(n)
	case uint64:
		return n
	case float64:
		return uint64(n)
	}
	return 0
}

func asUint64Ptr(v interface{}) *uint64 {
	if v == nil {
		return nil
	}
	n := asUint64(v)
	return &n
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asStringPtr(v interface{}) *string {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func asFloat64Ptr(v interface{}) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	}
	return nil
}

func asBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

func asTimeString(v interface{}, layout string) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(layout)
	}
	return ""
}

func asRawJSON(v interface{}) []byte {
	switch b := v.(type) {
	case []byte:
		return b
	case string:
		return []byte(b)
	case map[string]interface{}:
		// pgx decodes jsonb columns into maps; re-encode for the DTO.
		raw, err := json.Marshal(b)
		if err != nil {
			return nil
		}
		return raw
	}
	return nil
}

func asDateStringPtr(v interface{}) *string {
	if t, ok := v.(time.Time); ok {
		s := t.Format("2006-01-02")
		return &s
	}
	return nil
}
