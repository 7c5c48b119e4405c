package select_end_slot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/availability"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/logger"
)

type fakeService struct {
	gotEnd string
	draft  *domain.BookingDraft
	err    error
}

func (f *fakeService) SelectEndSlot(_ context.Context, _ string, endTime string) (*domain.BookingDraft, error) {
	f.gotEnd = endTime
	return f.draft, f.err
}

func serve(svc AvailabilityService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/drafts/{draftId}/end-slot", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/drafts/d1/end-slot", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{draft: &domain.BookingDraft{
		ID:           "d1",
		Step:         domain.StepSelectDateTime,
		StartSlot:    "10:00",
		EndSlot:      "13:00",
		Duration:     3,
		Package:      &domain.PackageRef{ID: "P1", Name: "Basic", PricePerHour: 500},
		PackagePrice: 1500,
	}}

	rec := serve(svc, `{"endTime":"13:00"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "13:00", svc.gotEnd)
	assert.Contains(t, rec.Body.String(), `"duration":3`)
	assert.Contains(t, rec.Body.String(), `"totalPrice":1500`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "missing end time", body: `{"endTime":" "}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `[]`, wantStatus: http.StatusBadRequest},
		{name: "not offered", body: `{"endTime":"15:00"}`, err: availability.ErrInvalidInput, wantStatus: http.StatusUnprocessableEntity},
		{name: "no start", body: `{"endTime":"15:00"}`, err: availability.ErrPrerequisite, wantStatus: http.StatusUnprocessableEntity},
		{name: "not found", body: `{"endTime":"15:00"}`, err: availability.ErrDraftNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", body: `{"endTime":"15:00"}`, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
