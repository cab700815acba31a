package config

import (
	"fmt"
	"strings"
	"time"
)

// Section holds one plugin's settings. Accessors never fail: absent or
// mistyped values fall back to the zero value or the given default.
type Section map[string]interface{}

// String returns the value as a string. Numbers and booleans are formatted,
// which loses their YAML spelling (007 becomes "7"); see Coerced. Absent
// keys and nested structures yield "".
func (s Section) String(key string) string {
	switch v := s[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// Coerced reports whether key holds a scalar that String had to format
// because it was not written as a YAML string.
func (s Section) Coerced(key string) bool {
	switch s[key].(type) {
	case int, int64, uint64, float64, bool:
		return true
	}
	return false
}

// Strings returns a list value. A single string is treated as a one-element list.
func (s Section) Strings(key string) []string {
	switch v := s[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
				out = append(out, str)
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// Bool returns a boolean value, false when absent.
func (s Section) Bool(key string) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1":
			return true
		}
	}
	return false
}

// Duration returns a duration written as "30s" or as a number of seconds.
func (s Section) Duration(key string, def time.Duration) time.Duration {
	switch v := s[key].(type) {
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil || d <= 0 {
			return def
		}
		return d
	case int:
		if v > 0 {
			return time.Duration(v) * time.Second
		}
	case float64:
		if v > 0 {
			return time.Duration(v * float64(time.Second))
		}
	}
	return def
}
