package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/httpwire/internal/app"
	"github.com/samvad-hq/httpwire/internal/config"
	"github.com/samvad-hq/httpwire/internal/logger"
	"github.com/samvad-hq/httpwire/pkg/middleware"
)

var (
	flagMethod   string
	flagHeaders  []string
	flagData     string
	flagSelector string
	flagNoCache  bool

	rootCmd = &cobra.Command{
		Use:   "fetch [flags] URL",
		Short: "Fetch a URL through the instrumented HTTP client pipeline.",
		Long: `Fetch performs an HTTP request through a client pipeline with the
configured middleware chain attached, logging each request line, response
status, and (at debug level) curl-style header/body dumps.

GET responses are cached locally when a cache backend is configured.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runFetch,
	}
)

func init() {
	rootCmd.Flags().StringVarP(&flagMethod, "method", "X", http.MethodGet, "HTTP method")
	rootCmd.Flags().StringArrayVarP(&flagHeaders, "header", "H", nil, `request header as "Name: value" (repeatable)`)
	rootCmd.Flags().StringVarP(&flagData, "data", "d", "", "request body")
	rootCmd.Flags().StringVar(&flagSelector, "selector", "", "CSS selector to extract from an HTML response")
	rootCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "bypass the response cache")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(1)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("fetch starting", "config", cfg)

	headers, err := parseHeaders(flagHeaders)
	if err != nil {
		return err
	}

	sink := middleware.NewZapSink(log.Sugared())
	fetcher, err := app.NewFetcher(cfg, log, sink)
	if err != nil {
		logger.ErrorObj("failed to initialize fetcher", "error", err)
		return fmt.Errorf("init fetcher: %w", err)
	}
	defer fetcher.Close()

	out, err := fetcher.Run(cmd.Context(), app.FetchOptions{
		URL:      args[0],
		Method:   flagMethod,
		Headers:  headers,
		Body:     flagData,
		Selector: flagSelector,
		NoCache:  flagNoCache,
	})
	if err != nil {
		return err
	}

	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Println()
	}
	return nil
}

// parseHeaders converts repeated "Name: value" flags into a header map.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q (want \"Name: value\")", h)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}
