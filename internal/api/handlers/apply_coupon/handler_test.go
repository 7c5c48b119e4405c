package apply_coupon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	applyCoupon "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/usecase/apply_coupon"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/logger"
)

type fakeUseCase struct {
	got  *applyCoupon.Request
	resp *applyCoupon.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *applyCoupon.Request) (*applyCoupon.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc ApplyCouponUseCase, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/drafts/{draftId}/coupon", NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/drafts/d1/coupon", strings.NewReader(body)))
	return rec
}

func TestHandle_Applied(t *testing.T) {
	discount := 20.0
	uc := &fakeUseCase{resp: &applyCoupon.Response{
		Discount: 20,
		Draft: &domain.BookingDraft{
			ID:           "d1",
			Step:         domain.StepPersonalInformation,
			Package:      &domain.PackageRef{ID: "P1", Name: "Basic", PricePerHour: 500},
			PackagePrice: 1500,
			CouponCode:   "SAVE20",
			Discount:     &discount,
		},
	}}

	rec := serve(uc, `{"couponCode":"SAVE20"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &applyCoupon.Request{DraftID: "d1", CouponCode: "SAVE20"}, uc.got)

	var resp ApplyCouponResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 20.0, resp.Discount)
	assert.Equal(t, 1200.0, resp.Draft.Totals.TotalAfterDiscount)
}

func TestHandle_RejectedUsesBackendMessage(t *testing.T) {
	rec := serve(&fakeUseCase{err: &applyCoupon.RejectedError{Message: "Coupon expired"}}, `{"couponCode":"OLD"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Coupon expired", resp.Message)

	rec = serve(&fakeUseCase{err: &applyCoupon.RejectedError{}}, `{"couponCode":"OLD"}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgCouponRejected, resp.Message)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{fmt.Errorf("%w: code too long", applyCoupon.ErrInvalidInput), http.StatusBadRequest},
		{applyCoupon.ErrDraftNotFound, http.StatusNotFound},
		{applyCoupon.ErrEmailRequired, http.StatusUnprocessableEntity},
		{applyCoupon.ErrRequestInProgress, http.StatusConflict},
		{applyCoupon.ErrDraftLocked, http.StatusConflict},
		{applyCoupon.ErrEmailChanged, http.StatusConflict},
		{fmt.Errorf("%w: timeout", applyCoupon.ErrUnavailable), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, `{"couponCode":"SAVE20"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "").Code)
}
