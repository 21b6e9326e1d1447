package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

// TypeDetailedLogger is the registry identifier for DetailedLogger.
const TypeDetailedLogger = "detailed_logger"

// DetailedLogger observes each outgoing request right before dispatch and its
// response once available, and emits human-readable log lines: the request
// line and response status at info/warn, plus a curl-style header/body dump at
// debug. It only reads the exchange; request and response are never mutated
// and the pipeline is never short-circuited. Header and body content is logged
// as-is: redacting sensitive values is the caller's responsibility.
type DetailedLogger struct {
	sink         Sink
	maxBodyBytes int
}

// NewDetailedLogger builds the logger around the given sink. A nil sink
// selects the default stdout sink with all levels enabled.
func NewDetailedLogger(sink Sink) *DetailedLogger {
	return &DetailedLogger{sink: ensureSink(sink)}
}

// SetMaxBodyBytes caps how much of a body the debug dump renders.
// Zero or negative keeps the full body.
func (d *DetailedLogger) SetMaxBodyBytes(n int) *DetailedLogger {
	d.maxBodyBytes = n
	return d
}

// Middleware exposes the hooks for client attachment.
func (d *DetailedLogger) Middleware() Middleware {
	return Middleware{
		Name:       TypeDetailedLogger,
		OnRequest:  d.OnRequest,
		OnResponse: d.OnResponse,
		OnError:    d.OnError,
	}
}

// OnRequest logs the request line at info and the header/body dump at debug.
// It always returns nil so the pipeline proceeds to the next stage.
func (d *DetailedLogger) OnRequest(_ *resty.Client, r *resty.Request) error {
	d.sink.Info(func() string {
		return strings.ToUpper(r.Method) + " " + r.URL
	})
	d.sink.Debug(func() string {
		return d.dump(r.Header, renderBody(r.Body))
	})
	return nil
}

// OnResponse logs "HTTP <status>" at info for statuses in [200,400) and at
// warn for everything else, then the header/body dump at debug. Always
// returns nil.
func (d *DetailedLogger) OnResponse(_ *resty.Client, r *resty.Response) error {
	status := r.StatusCode()
	line := func() string { return fmt.Sprintf("HTTP %d", status) }
	if status >= 200 && status < 400 {
		d.sink.Info(line)
	} else {
		d.sink.Warn(line)
	}
	d.sink.Debug(func() string {
		return d.dump(r.Header(), string(r.Body()))
	})
	return nil
}

// OnError logs transport-level failures at warn. When the failure carries a
// response, the usual status line is emitted so callers see the same shape
// either way.
func (d *DetailedLogger) OnError(r *resty.Request, err error) {
	var respErr *resty.ResponseError
	if errors.As(err, &respErr) && respErr.Response != nil {
		status := respErr.Response.StatusCode()
		d.sink.Warn(func() string { return fmt.Sprintf("HTTP %d", status) })
		return
	}
	d.sink.Warn(func() string {
		return strings.ToUpper(r.Method) + " " + r.URL + " failed: " + err.Error()
	})
}

// dump renders headers curl-style: the "name: value" lines in sorted name
// order joined by newlines, then "\n\n", then the body text.
func (d *DetailedLogger) dump(headers http.Header, body string) string {
	if d.maxBodyBytes > 0 && len(body) > d.maxBodyBytes {
		body = body[:d.maxBodyBytes]
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(headers))
	for _, name := range names {
		for _, value := range headers[name] {
			lines = append(lines, name+": "+value)
		}
	}
	return strings.Join(lines, "\n") + "\n\n" + body
}

// renderBody turns a resty request body into loggable text.
func renderBody(body any) string {
	switch b := body.(type) {
	case nil:
		return ""
	case string:
		return b
	case []byte:
		return string(b)
	default:
		return fmt.Sprintf("%v", b)
	}
}
