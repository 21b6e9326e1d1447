package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samvad-hq/httpwire/pkg/middleware"
)

// countingSink tallies emitted lines per level.
type countingSink struct {
	infos  []string
	debugs []string
	warns  []string
}

func (s *countingSink) Info(msg func() string)  { s.infos = append(s.infos, msg()) }
func (s *countingSink) Debug(msg func() string) { s.debugs = append(s.debugs, msg()) }
func (s *countingSink) Warn(msg func() string)  { s.warns = append(s.warns, msg()) }

func TestRestyClientGetWithDetailedLogger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("missing Accept header, got %q", got)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	sink := &countingSink{}
	mw := middleware.NewDetailedLogger(sink).Middleware()
	client := NewRestyClient(5*time.Second, mw)

	resp, err := client.Get(context.Background(), server.URL, map[string]string{"Accept": "application/json"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":true}` {
		t.Fatalf("unexpected body %q", resp.Body())
	}

	if len(sink.infos) != 2 {
		t.Fatalf("expected request + response info lines, got %q", sink.infos)
	}
	if sink.infos[0] != "GET "+server.URL {
		t.Fatalf("unexpected request line: %q", sink.infos[0])
	}
	if sink.infos[1] != "HTTP 200" {
		t.Fatalf("unexpected status line: %q", sink.infos[1])
	}
	if len(sink.debugs) != 2 {
		t.Fatalf("expected request + response dumps, got %d", len(sink.debugs))
	}
}

func TestRestyClientDoSendsMethodAndBody(t *testing.T) {
	var gotMethod, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewRestyClient(5 * time.Second)
	resp, err := client.Do(context.Background(), "post", server.URL, nil, []byte(`{"name":"x"}`))
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotBody != `{"name":"x"}` {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestRestyClientSurfacesResponseHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Trace", "abc")
	}))
	defer server.Close()

	client := NewRestyClient(5 * time.Second)
	resp, err := client.Get(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := resp.Header().Get("X-Trace"); got != "abc" {
		t.Fatalf("expected response header to pass through, got %q", got)
	}
}

func TestRestyClientErrorHookFires(t *testing.T) {
	sink := &countingSink{}
	mw := middleware.NewDetailedLogger(sink).Middleware()
	client := NewRestyClient(500*time.Millisecond, mw)

	// Closed server: the request fails at transport level.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	if _, err := client.Get(context.Background(), url, nil); err == nil {
		t.Fatalf("expected transport error")
	}
	if len(sink.warns) == 0 {
		t.Fatalf("expected warn line for transport failure")
	}
}
