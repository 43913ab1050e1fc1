// Package restapi holds the clients for the upstream REST services. All
// resource clients share one Client bound to the backend base URL. The
// bearer token travels on the request context (see port.WithToken).
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"mesa-console/internal/core/port"
	"mesa-console/internal/metrics"
)

// Aliases of the port sentinels so callers of this package can match
// without importing port.
var (
	ErrNotFound     = port.ErrNotFound
	ErrUnauthorized = port.ErrUnauthorized
)

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-2xx: %d body=%s", e.StatusCode, e.Body)
}

// Is lets 401/403 match ErrUnauthorized and 404 match ErrNotFound.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	default:
		return false
	}
}

// Client performs JSON requests against the backend.
type Client struct {
	base    url.URL
	httpc   HTTPClient
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option customises a Client.
type Option func(*Client)

func WithHTTPClient(h HTTPClient) Option { return func(c *Client) { c.httpc = h } }

func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.logger = l } }

func WithMetrics(m *metrics.Metrics) Option { return func(c *Client) { c.metrics = m } }

// NewHTTPClient returns the default transport with a request timeout.
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// New returns a client bound to base.
func New(base url.URL, opts ...Option) *Client {
	c := &Client{
		base:   base,
		httpc:  NewHTTPClient(15 * time.Second),
		logger: slog.Default(),
		tracer: otel.Tracer("mesa-console/restapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describes one upstream call. resource names the collection and is
// used for logs, metrics and span names.
type request struct {
	method   string
	resource string
	path     []string
	query    url.Values
	body     any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	ctx, span := c.tracer.Start(ctx, r.method+" "+r.resource, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	segments := make([]string, 0, len(r.path)+1)
	for _, p := range append([]string{r.resource}, r.path...) {
		segments = append(segments, url.PathEscape(p))
	}
	u := c.base.JoinPath(segments...)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}
	span.SetAttributes(
		attribute.String("http.request.method", r.method),
		attribute.String("url.full", u.String()),
	)

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := port.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(r.resource, r.method, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(r.resource, r.method, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err = &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", r.resource, err)
	}
	return nil
}
