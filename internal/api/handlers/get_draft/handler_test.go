package get_draft

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Get(_ context.Context, id string) (*models.DraftResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.DraftResponse{ID: id}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "expired", err: drafts.ErrDraftNotFound, wantStatus: http.StatusNotFound},
		{name: "store error", err: errors.New("redis down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/api/v1/drafts/{draftId}", NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/drafts/d1", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Contains(t, rec.Body.String(), `"id":"d1"`)
			}
		})
	}
}
