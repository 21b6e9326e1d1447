package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides a local response cache abstraction.

// Store caches fetched response bodies keyed by URL.
type Store interface {
	Close() error
	CachedBody(url string) ([]byte, bool, error)
	StoreBody(url string, body []byte) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ResponseTTL     time.Duration
	CleanupInterval time.Duration
}

const (
	defaultResponseTTL     = 15 * time.Minute
	defaultCleanupInterval = time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ResponseTTL <= 0 {
		opts.ResponseTTL = defaultResponseTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                            { return nil }
func (noopStore) CachedBody(string) ([]byte, bool, error) { return nil, false, nil }
func (noopStore) StoreBody(string, []byte) error          { return nil }
