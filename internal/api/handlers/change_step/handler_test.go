package change_step

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/logger"
)

func setup(t *testing.T, d *domain.BookingDraft) *mux.Router {
	t.Helper()
	store := draftStore.NewMemoryStore(time.Hour, nil)
	_, err := store.Create(context.Background(), d)
	require.NoError(t, err)

	h := NewHandler(drafts.NewService(store, logger.NewNop()), logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/drafts/{draftId}/steps/{direction}", h.Handle).Methods(http.MethodPost)
	return router
}

func post(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestHandle_NextOnIncompleteStep(t *testing.T) {
	router := setup(t, &domain.BookingDraft{ID: "d1", Step: domain.FirstStep})

	rec := post(router, "/api/v1/drafts/d1/steps/next")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgStepIncomplete, resp.Message)
	assert.NotEmpty(t, resp.Details)
}

func TestHandle_NextAndPrev(t *testing.T) {
	router := setup(t, &domain.BookingDraft{
		ID:     "d1",
		Step:   domain.FirstStep,
		Studio: &domain.StudioRef{ID: "S1", Name: "Studio One"},
	})

	rec := post(router, "/api/v1/drafts/d1/steps/next")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"current":2`)

	rec = post(router, "/api/v1/drafts/d1/steps/prev")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"current":1`)

	rec = post(router, "/api/v1/drafts/d1/steps/prev")
	require.Equal(t, http.StatusOK, rec.Code, "prev on the first step is a no-op")
	assert.Contains(t, rec.Body.String(), `"current":1`)
}

func TestHandle_BadRequests(t *testing.T) {
	router := setup(t, &domain.BookingDraft{ID: "d1", Step: domain.FirstStep})

	assert.Equal(t, http.StatusBadRequest, post(router, "/api/v1/drafts/d1/steps/sideways").Code)
	assert.Equal(t, http.StatusNotFound, post(router, "/api/v1/drafts/nope/steps/next").Code)
}

func TestHandle_LockedDuringSubmission(t *testing.T) {
	router := setup(t, &domain.BookingDraft{
		ID:         "d1",
		Step:       domain.FirstStep,
		Studio:     &domain.StudioRef{ID: "S1"},
		Submitting: true,
	})

	for _, direction := range []string{DirectionNext, DirectionPrev} {
		rec := post(router, "/api/v1/drafts/d1/steps/"+direction)
		assert.Equal(t, http.StatusConflict, rec.Code, direction)
	}
}
