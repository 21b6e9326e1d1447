package middleware

import (
	"strconv"
	"strings"
)

const (
	ConfigMaxBodyBytesKey = "max_body_bytes"
)

// ConfigInt returns the integer value for key from cfg.Config or a fallback.
func ConfigInt(cfg Config, key string, fallback int) int {
	if cfg.Config == nil {
		return fallback
	}
	raw, ok := cfg.Config[key]
	if !ok {
		return fallback
	}

	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}
