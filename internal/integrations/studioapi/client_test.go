package studioapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type observerSpy struct {
	calls []string
}

func (o *observerSpy) ObserveUpstream(operation, outcome string, _ time.Duration) {
	o.calls = append(o.calls, operation+":"+outcome)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *observerSpy) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	spy := &observerSpy{}
	return NewClient(srv.URL+"/", 2*time.Second, nopLogger{}, spy), spy
}

func TestClient_GetAvailableSlots(t *testing.T) {
	client, spy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings/available-slots", r.URL.Path)

		var req AvailableSlotsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, AvailableSlotsRequest{StudioID: "S1", Date: "2024-06-01", Duration: 2}, req)

		_, _ = w.Write([]byte(`{"data":[{"startTime":"09:00"},{"startTime":"10:00"}]}`))
	})

	slots, err := client.GetAvailableSlots(context.Background(), AvailableSlotsRequest{StudioID: "S1", Date: "2024-06-01", Duration: 2})

	require.NoError(t, err)
	assert.Equal(t, []StartSlot{{StartTime: "09:00"}, {StartTime: "10:00"}}, slots)
	assert.Equal(t, []string{"available_slots:ok"}, spy.calls)
}

func TestClient_GetAvailableEndSlots(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, "P1", raw["package_id"])
		assert.Equal(t, "10:00", raw["startTime"])

		_, _ = w.Write([]byte(`{"data":[{"endTime":"12:00","totalPrice":1000}]}`))
	})

	slots, err := client.GetAvailableEndSlots(context.Background(), EndSlotsRequest{
		StartTime: "10:00", StudioID: "S1", Date: "2024-06-01", PackageID: "P1",
	})

	require.NoError(t, err)
	assert.Equal(t, []EndSlot{{EndTime: "12:00", TotalPrice: 1000}}, slots)
}

func TestClient_ApplyCoupon_Rejected(t *testing.T) {
	client, spy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Coupon expired"}`))
	})

	_, err := client.ApplyCoupon(context.Background(), ApplyCouponRequest{Email: "a@b.c", CouponID: "OLD"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Coupon expired", UserMessage(err))
	assert.Equal(t, []string{"apply_coupon:rejected"}, spy.calls)
}

func TestClient_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ApplyCoupon(context.Background(), ApplyCouponRequest{Email: "a@b.c", CouponID: "X"})

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, DefaultErrorMessage, UserMessage(err))
}

func TestClient_InvalidResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	_, err := client.GetAvailableSlots(context.Background(), AvailableSlotsRequest{StudioID: "S1"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_CreateBooking(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings", r.URL.Path)

		var req CreateBookingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CASH", req.PaymentMethod)
		assert.Len(t, req.AddOns, 1)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"_id":"665f1c","status":"pending","totalPrice":1600}}`))
	})

	created, err := client.CreateBooking(context.Background(), CreateBookingRequest{
		StudioID:      "S1",
		PaymentMethod: "CASH",
		AddOns:        []AddOnItem{{ID: "mic", Quantity: 2, Price: 50}},
	})

	require.NoError(t, err)
	assert.Equal(t, &CreatedBooking{ID: "665f1c", Status: "pending", TotalPrice: 1600}, created)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nopLogger{}, nil)

	_, err := client.GetAvailableSlots(context.Background(), AvailableSlotsRequest{StudioID: "S1"})
	assert.True(t, errors.Is(err, ErrUnavailable))
}
