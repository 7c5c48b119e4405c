package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/logger"
)

type observation struct {
	method, route, status string
}

type metricsSpy struct {
	observed []observation
}

func (s *metricsSpy) ObserveHTTPRequest(method, route, status string, _ time.Duration) {
	s.observed = append(s.observed, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	spy := &metricsSpy{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(spy))
	router.HandleFunc("/api/v1/drafts/{draftId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	router.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/drafts/abc-123", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Len(t, spy.observed, 2)
	assert.Equal(t, observation{"GET", "/api/v1/drafts/{draftId}", "404"}, spy.observed[0])
	assert.Equal(t, observation{"GET", "/ok", "200"}, spy.observed[1])
}

func mustTrusted(t *testing.T, values ...string) []*net.IPNet {
	t.Helper()
	nets, err := ParseTrustedProxies(values)
	require.NoError(t, err)
	return nets
}

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(1, 2, mustTrusted(t, "10.0.0.100"), logger.NewNop())
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts/d1/coupon", nil)
		req.RemoteAddr = remote
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000", ""))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001", ""))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002", ""), "burst exhausted")

	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000", ""), "other clients are not affected")
	assert.Equal(t, http.StatusOK, call("10.0.0.100:5000", "203.0.113.7"), "client behind trusted proxy has its own bucket")
}

func TestRateLimiter_IgnoresForwardedHeaderFromUntrustedPeer(t *testing.T) {
	rl := NewRateLimiter(1, 3, mustTrusted(t, "10.0.0.0/24"), logger.NewNop())
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	passed := 0
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts/d1/coupon", nil)
		req.RemoteAddr = "198.51.100.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			passed++
		}
	}

	assert.Equal(t, 3, passed)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, 3, nil, logger.NewNop())
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	now = now.Add(5 * time.Minute)
	rl.getLimiter("b")

	assert.Equal(t, 1, rl.Cleanup(3*time.Minute))
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "b")
}

func TestClientIP(t *testing.T) {
	trusted := mustTrusted(t, "10.0.0.0/8", "192.0.2.1")

	tests := []struct {
		name      string
		remote    string
		forwarded string
		want      string
	}{
		{name: "remote with port", remote: "198.51.100.4:1234", want: "198.51.100.4"},
		{name: "remote without port", remote: "198.51.100.4", want: "198.51.100.4"},
		{name: "untrusted peer header ignored", remote: "198.51.100.4:1234", forwarded: "203.0.113.7", want: "198.51.100.4"},
		{name: "trusted peer", remote: "192.0.2.1:1234", forwarded: " 203.0.113.7 ", want: "203.0.113.7"},
		{name: "rightmost untrusted hop", remote: "10.1.1.1:80", forwarded: "1.1.1.1, 203.0.113.7, 10.2.2.2", want: "203.0.113.7"},
		{name: "only trusted hops", remote: "10.1.1.1:80", forwarded: "10.2.2.2", want: "10.2.2.2"},
		{name: "trusted peer without header", remote: "10.1.1.1:80", want: "10.1.1.1"},
		{name: "garbage hop", remote: "10.1.1.1:80", forwarded: "not-an-ip", want: "10.1.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(req, trusted))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	nets, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1", "::1"})
	require.NoError(t, err)
	require.Len(t, nets, 3)
	assert.True(t, nets[1].Contains(net.ParseIP("192.0.2.1")))
	assert.False(t, nets[1].Contains(net.ParseIP("192.0.2.2")))

	_, err = ParseTrustedProxies([]string{"proxy.local"})
	assert.Error(t, err)
}
