package middleware

import "github.com/go-resty/resty/v2"

// Package middleware contains pluggable client-pipeline middlewares and the
// registry that builds them from config entries.

// Sink receives formatted log lines at leveled severities. Message producers
// are evaluated lazily: implementations must not invoke the producer when the
// corresponding level is disabled. Sinks shared across concurrent requests
// must be safe for concurrent use.
type Sink interface {
	Info(msg func() string)
	Debug(msg func() string)
	Warn(msg func() string)
}

// Middleware bundles the pipeline hooks a single middleware contributes.
// Nil hooks are simply not attached to the client.
type Middleware struct {
	Name       string
	OnRequest  resty.RequestMiddleware
	OnResponse resty.ResponseMiddleware
	OnError    resty.ErrorHook
}

// Config represents a single middleware entry declared in config files.
type Config struct {
	ID      string         `json:"id" yaml:"id"`
	Type    string         `json:"type" yaml:"type"`
	Enabled *bool          `json:"enabled" yaml:"enabled"`
	Config  map[string]any `json:"config" yaml:"config"`
}

// IsEnabled reports whether the entry should be built (enabled defaults to true).
func (c Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}
