package middleware

import (
	"fmt"
	"strings"
	"sync"
)

// Builder creates a Middleware from a config entry. A nil sink means the
// builder picks its own default.
type Builder func(cfg Config, sink Sink) (Middleware, error)

// Registry maps middleware types to builders.
type Registry interface {
	Register(typ string, builder Builder)
	MiddlewareFor(cfg Config, sink Sink) (Middleware, error)
}

type registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry with optional pre-registered builders.
func NewRegistry(builders map[string]Builder) Registry {
	r := &registry{
		builders: make(map[string]Builder),
	}
	for typ, b := range builders {
		r.Register(typ, b)
	}
	return r
}

// Register associates a builder with a middleware type.
func (r *registry) Register(typ string, builder Builder) {
	if typ = strings.TrimSpace(strings.ToLower(typ)); typ == "" || builder == nil {
		return
	}

	r.mu.Lock()
	r.builders[typ] = builder
	r.mu.Unlock()
}

// MiddlewareFor returns the middleware built for the provided config.
func (r *registry) MiddlewareFor(cfg Config, sink Sink) (Middleware, error) {
	if cfg.Type == "" {
		return Middleware{}, fmt.Errorf("middleware %q has no type configured", cfg.ID)
	}

	r.mu.RLock()
	builder := r.builders[strings.ToLower(cfg.Type)]
	r.mu.RUnlock()

	if builder == nil {
		return Middleware{}, fmt.Errorf("no middleware registered for type %q", cfg.Type)
	}
	return builder(cfg, sink)
}

// DefaultRegistry wires up known middlewares.
func DefaultRegistry() Registry {
	builders := map[string]Builder{
		TypeDetailedLogger: newDetailedLoggerMiddleware,
	}
	return NewRegistry(builders)
}

// newDetailedLoggerMiddleware builds a DetailedLogger from a config entry.
func newDetailedLoggerMiddleware(cfg Config, sink Sink) (Middleware, error) {
	logger := NewDetailedLogger(sink)
	if n := ConfigInt(cfg, ConfigMaxBodyBytesKey, 0); n > 0 {
		logger.SetMaxBodyBytes(n)
	}
	return logger.Middleware(), nil
}

// BuildAll instantiates middlewares for enabled configs using the registry.
func BuildAll(reg Registry, cfgs []Config, sink Sink) ([]Middleware, error) {
	if reg == nil || len(cfgs) == 0 {
		return nil, nil
	}

	var mws []Middleware
	for _, cfg := range cfgs {
		if !cfg.IsEnabled() {
			continue
		}
		mw, err := reg.MiddlewareFor(cfg, sink)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return mws, nil
}
