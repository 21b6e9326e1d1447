package extract

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Sample</title></head>
<body>
  <h1>Main Heading</h1>
  <div class="item">first</div>
  <div class="item">  second  </div>
  <div class="item"></div>
</body>
</html>`

func TestSelectReturnsMatchingText(t *testing.T) {
	got, err := Select([]byte(samplePage), "div.item")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("unexpected matches: %q", got)
	}
}

func TestSelectSingleElement(t *testing.T) {
	got, err := Select([]byte(samplePage), "title")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 1 || got[0] != "Sample" {
		t.Fatalf("unexpected matches: %q", got)
	}
}

func TestSelectNoMatches(t *testing.T) {
	got, err := Select([]byte(samplePage), "article")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %q", got)
	}
}

func TestSelectTruncatesOversizedBody(t *testing.T) {
	page := `<html><body><div class="item">early match</div><!-- ` +
		strings.Repeat("x", 2<<20) + ` --></body></html>`

	got, err := Select([]byte(page), "div.item")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 1 || got[0] != "early match" {
		t.Fatalf("unexpected matches: %q", got)
	}
}

func TestSelectRejectsBadInput(t *testing.T) {
	if _, err := Select([]byte(samplePage), ""); err == nil {
		t.Fatalf("expected error for empty selector")
	}
	if _, err := Select([]byte(samplePage), "di v..["); err == nil {
		t.Fatalf("expected error for invalid selector")
	}
}
