package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/samvad-hq/httpwire/internal/config"
	"github.com/samvad-hq/httpwire/internal/extract"
	"github.com/samvad-hq/httpwire/internal/logger"
	"github.com/samvad-hq/httpwire/internal/storage"
	"github.com/samvad-hq/httpwire/pkg/httpclient"
	"github.com/samvad-hq/httpwire/pkg/middleware"
)

// Fetcher performs HTTP requests through the instrumented client pipeline,
// consulting the response cache and optionally extracting content from HTML
// responses.
type Fetcher struct {
	cfg    *config.Config
	client httpclient.Client
	store  storage.Store
	log    logger.Logger
}

// FetchOptions describes a single fetch operation.
type FetchOptions struct {
	URL      string
	Method   string
	Headers  map[string]string
	Body     string
	Selector string
	NoCache  bool
}

// NewFetcher builds a fetcher runtime from config. The sink receives the
// middleware log lines; nil lets each middleware pick its default sink.
func NewFetcher(cfg *config.Config, log logger.Logger, sink middleware.Sink) (*Fetcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	chain, err := loadChain(cfg.MiddlewaresFile)
	if err != nil {
		return nil, fmt.Errorf("load middleware chain: %w", err)
	}
	chainIDs := make([]string, 0, len(chain))
	for _, mc := range chain {
		chainIDs = append(chainIDs, mc.ID)
	}
	log.InfoObj("middleware chain loaded", "chain_meta", map[string]any{
		"count": len(chainIDs),
		"ids":   chainIDs,
	})

	mws, err := middleware.BuildAll(middleware.DefaultRegistry(), chain, sink)
	if err != nil {
		return nil, fmt.Errorf("build middlewares: %w", err)
	}
	client := httpclient.NewRestyClient(cfg.HTTPTimeout, mws...)

	storeOpts := storage.Options{
		ResponseTTL:     cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanupInterval,
	}
	store, err := storage.NewStore(cfg.CacheType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.CacheType,
		"path":                     cfg.BBoltPath,
		"response_ttl_seconds":     int(cfg.CacheTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.CacheCleanupInterval.Seconds()),
	})

	return &Fetcher{
		cfg:    cfg,
		client: client,
		store:  store,
		log:    log,
	}, nil
}

// loadChain reads the middlewares file, falling back to the default chain
// when no file is configured or present.
func loadChain(path string) ([]middleware.Config, error) {
	if strings.TrimSpace(path) == "" {
		return middleware.DefaultChain(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return middleware.DefaultChain(), nil
	}
	return middleware.LoadChain(path)
}

// Run performs a single fetch and returns the output bytes.
func (f *Fetcher) Run(ctx context.Context, opts FetchOptions) ([]byte, error) {
	if f == nil || f.client == nil {
		return nil, fmt.Errorf("fetcher is not initialized")
	}
	if strings.TrimSpace(opts.URL) == "" {
		return nil, fmt.Errorf("url is empty")
	}

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}
	cacheable := method == http.MethodGet && !opts.NoCache

	if cacheable {
		cached, hit, err := f.store.CachedBody(opts.URL)
		if err != nil {
			f.log.WarnObj("response cache lookup failed", "cache_error", map[string]any{
				"url":   opts.URL,
				"error": err.Error(),
			})
		} else if hit {
			f.log.InfoObj("response served from cache", "cache_meta", map[string]any{
				"url":        opts.URL,
				"body_bytes": len(cached),
			})
			return f.render(cached, opts.Selector)
		}
	}

	var body []byte
	if opts.Body != "" {
		body = []byte(opts.Body)
	}
	resp, err := f.client.Do(ctx, method, opts.URL, opts.Headers, body)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		snippet := readBodySnippet(resp.Body())
		return nil, fmt.Errorf("http response status %d: %s", resp.StatusCode(), snippet)
	}

	out := resp.Body()
	if cacheable && resp.StatusCode() == http.StatusOK {
		if err := f.store.StoreBody(opts.URL, out); err != nil {
			f.log.WarnObj("response cache store failed", "cache_error", map[string]any{
				"url":   opts.URL,
				"error": err.Error(),
			})
		}
	}

	return f.render(out, opts.Selector)
}

// render applies the optional CSS selector extraction to the body.
func (f *Fetcher) render(body []byte, selector string) ([]byte, error) {
	if strings.TrimSpace(selector) == "" {
		return body, nil
	}
	matches, err := extract.Select(body, selector)
	if err != nil {
		return nil, fmt.Errorf("extract selector: %w", err)
	}
	return []byte(strings.Join(matches, "\n")), nil
}

// Close releases the storage backend.
func (f *Fetcher) Close() {
	if f == nil || f.store == nil {
		return
	}
	if err := f.store.Close(); err != nil {
		f.log.ErrorObj("failed to close storage", "error", err)
	}
}

func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
