package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("goo-cast.booking", reg)

	m.ObserveStaleResponse("start_slots")
	m.ObserveStaleResponse("start_slots")
	m.ObserveCoupon("applied")
	m.ObserveSubmission("created")
	m.ObserveUpstream("available_slots", "ok", 30*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/drafts/{draftId}", "200", 5*time.Millisecond)
	m.SetActiveDrafts(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.staleResponses.WithLabelValues("start_slots")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.couponApplications.WithLabelValues("applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingSubmissions.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("available_slots", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/drafts/{draftId}", "200")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.activeDrafts))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "goo_cast_booking", sanitize("Goo-Cast.Booking"))
}
