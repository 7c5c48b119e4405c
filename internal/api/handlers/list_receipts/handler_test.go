package list_receipts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/receipts"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/receipts/models"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/logger"
)

type fakeService struct {
	gotEmail string
	err      error
}

func (f *fakeService) ListByEmail(_ context.Context, email string) (*models.ReceiptListResponse, error) {
	f.gotEmail = email
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReceiptListResponse{Receipts: []models.ReceiptResponse{{ID: 1}, {ID: 2}}}, nil
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/receipts?email=mona%40example.com", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mona@example.com", svc.gotEmail)
	assert.Contains(t, rec.Body.String(), `"receipts":[`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "missing email", query: "", wantStatus: http.StatusBadRequest},
		{name: "invalid email", query: "?email=nope", err: receipts.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", query: "?email=a%40b.c", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/receipts"+tt.query, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
