package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-console/internal/core/port"
	"mesa-console/internal/metrics"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	base, err := url.Parse(srv.URL + "/api")
	require.NoError(t, err)
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(*base, opts...)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClientAttachesBearerToken(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, []any{})
	})

	NewSellerClient(c).GetAll(port.WithToken(context.Background(), "tok-1"))
	assert.Equal(t, "Bearer tok-1", got)

	NewSellerClient(c).GetAll(context.Background())
	assert.Empty(t, got)
}

func TestClientBuildsPathAndQuery(t *testing.T) {
	var path, query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		query = r.URL.RawQuery
		writeJSON(t, w, http.StatusOK, []any{})
	})

	NewProductClient(c).GetByCategory(context.Background(), "home & garden")
	assert.Equal(t, "/api/products/category/home%20&%20garden", path)
	assert.Empty(t, query)
}

func TestStatusErrorMatchesSentinels(t *testing.T) {
	tests := []struct {
		code         int
		notFound     bool
		unauthorized bool
	}{
		{http.StatusNotFound, true, false},
		{http.StatusUnauthorized, false, true},
		{http.StatusForbidden, false, true},
		{http.StatusInternalServerError, false, false},
	}
	for _, tt := range tests {
		err := error(&StatusError{StatusCode: tt.code})
		assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound), tt.code)
		assert.Equal(t, tt.unauthorized, errors.Is(err, ErrUnauthorized), tt.code)
	}
}

func TestResolvePolicies(t *testing.T) {
	m := metrics.New()
	c := New(url.URL{}, WithMetrics(m), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	boom := errors.New("boom")

	assert.NoError(t, c.resolve(context.Background(), Propagate, "x", "op", nil))
	assert.NoError(t, c.resolve(context.Background(), DegradeToEmpty, "x", "op", boom))

	err := c.resolve(context.Background(), Propagate, "x", "op", boom)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	n, err := testutil.GatherAndCount(m.Registry(), "mesa_console_upstream_degraded_reads_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPageMappingAcceptsEitherCountField(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"totalCount", `{"items":[{"id":1,"name":"A"}],"page":2,"pageSize":1,"totalCount":3,"totalPages":3,"hasPrevious":true,"hasNext":true}`},
		{"totalItems", `{"items":[{"id":1,"name":"A"}],"page":2,"pageSize":1,"totalItems":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "2", r.URL.Query().Get("page"))
				_, _ = io.WriteString(w, tt.body)
			})
			p := NewAgencyClient(c).List(context.Background(), listQ(2, 1))
			require.Len(t, p.Items, 1)
			assert.Equal(t, 3, p.Total)
			assert.Equal(t, 3, p.TotalPages)
			assert.True(t, p.HasPrevious)
			assert.True(t, p.HasNext)
		})
	}
}

func TestParseTime(t *testing.T) {
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime("garbage").IsZero())
	assert.Equal(t, 2024, parseTime("2024-03-01T10:00:00Z").Year())
	assert.Equal(t, 2024, parseTime("2024-03-01T10:00:00.123").Year())
	assert.Equal(t, 3, int(parseTime("2024-03-01").Month()))
}
