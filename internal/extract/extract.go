package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/samvad-hq/httpwire/internal/logger"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
)

// Select parses the HTML body and returns the trimmed text of every node
// matching the CSS selector, skipping empty matches.
func Select(body []byte, selector string) ([]string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("selector is empty")
	}

	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}

	if len(body) > maxHTMLBodyBytes {
		logger.WarnObj("html body truncated before parsing", "extract_meta", map[string]any{
			"body_bytes": len(body),
			"max_bytes":  maxHTMLBodyBytes,
		})
		body = body[:maxHTMLBodyBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []string
	doc.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
		if txt := strings.TrimSpace(sel.Text()); txt != "" {
			out = append(out, txt)
		}
	})

	logger.DebugObj("selector matched", "extract_meta", map[string]any{
		"selector": selector,
		"matches":  len(out),
	})
	return out, nil
}
