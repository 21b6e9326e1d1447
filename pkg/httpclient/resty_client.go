package httpclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/samvad-hq/httpwire/pkg/middleware"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout and
// middleware chain attached in order.
func NewRestyClient(timeout time.Duration, mws ...middleware.Middleware) *RestyClient {
	c := resty.New()
	c.SetTimeout(timeout)

	for _, mw := range mws {
		if mw.OnRequest != nil {
			c.OnBeforeRequest(mw.OnRequest)
		}
		if mw.OnResponse != nil {
			c.OnAfterResponse(mw.OnResponse)
		}
		if mw.OnError != nil {
			c.OnError(mw.OnError)
		}
	}

	return &RestyClient{client: c}
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.Do(ctx, http.MethodGet, url, headers, nil)
}

// Do performs an HTTP request with the given method, headers, and raw body.
func (r *RestyClient) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if len(body) > 0 {
		req.SetBody(body)
	}

	resp, err := req.Execute(strings.ToUpper(strings.TrimSpace(method)), url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
