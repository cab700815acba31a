package reporter

import (
	"strings"
	"time"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/config"
)

const defaultRequestTimeout = 30 * time.Second

// stringKeys are the values sent to the server verbatim.
var stringKeys = []string{"server_url", "device_name", "device_id", "token"}

// Config is one immutable snapshot of the sleepy section. Reload swaps in a
// new value instead of mutating the old one.
type Config struct {
	ServerURL  string
	DeviceName string
	DeviceID   string
	Token      string

	IgnoreClasses   []string
	RequestTimeout  time.Duration
	NotifyOnFailure bool
}

// ConfigFromSection reads a Config. Absent or non-string values become "".
func ConfigFromSection(s config.Section) *Config {
	return &Config{
		ServerURL:       s.String("server_url"),
		DeviceName:      s.String("device_name"),
		DeviceID:        s.String("device_id"),
		Token:           s.String("token"),
		IgnoreClasses:   s.Strings("ignore_classes"),
		RequestTimeout:  s.Duration("request_timeout", defaultRequestTimeout),
		NotifyOnFailure: s.Bool("notify_on_failure"),
	}
}

// coercedKeys lists string settings written as unquoted YAML numbers or
// booleans. Their text may differ from what the user typed.
func coercedKeys(s config.Section) []string {
	var keys []string
	for _, key := range stringKeys {
		if s.Coerced(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Complete reports whether every value needed for a push is set.
func (c *Config) Complete() bool {
	return c != nil && c.DeviceID != "" && c.DeviceName != "" && c.ServerURL != ""
}

// Ignored reports whether windows of class must never be reported.
func (c *Config) Ignored(class string) bool {
	if class == "" {
		return false
	}
	for _, ignored := range c.IgnoreClasses {
		if strings.EqualFold(ignored, class) {
			return true
		}
	}
	return false
}
