package apply_coupon

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	applyCoupon "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/usecase/apply_coupon"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCoupon      = "некорректный код купона"
	msgNotFound           = "черновик не найден или истек"
	msgEmailRequired      = "укажите email, чтобы применить купон"
	msgInProgress         = "купон уже проверяется"
	msgDraftLocked        = "бронирование уже отправляется"
	msgEmailChanged       = "email изменился во время проверки купона, попробуйте снова"
	msgCouponRejected     = "купон не может быть применен"
	msgUnavailable        = "сервис купонов временно недоступен"
)

type Handler struct {
	useCase ApplyCouponUseCase
	logger  Logger
}

func NewHandler(useCase ApplyCouponUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/coupon
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var req ApplyCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts/{id}/coupon - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(draftID))
	if err != nil {
		var rejected *applyCoupon.RejectedError

		switch {
		case errors.As(err, &rejected):
			h.logger.Warn("POST /drafts/{id}/coupon - Coupon rejected: draft_id=%s, message=%s", draftID, rejected.Message)
			handlers.RespondUnprocessable(w, handlers.MessageOrDefault(rejected.Message, msgCouponRejected))

		case errors.Is(err, applyCoupon.ErrInvalidInput):
			h.logger.Warn("POST /drafts/{id}/coupon - Invalid coupon: draft_id=%s, error=%v", draftID, err)
			handlers.RespondBadRequest(w, msgInvalidCoupon)

		case errors.Is(err, applyCoupon.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/coupon - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, applyCoupon.ErrEmailRequired):
			h.logger.Warn("POST /drafts/{id}/coupon - Email required: draft_id=%s", draftID)
			handlers.RespondUnprocessable(w, msgEmailRequired)

		case errors.Is(err, applyCoupon.ErrRequestInProgress):
			h.logger.Warn("POST /drafts/{id}/coupon - Request in progress: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgInProgress)

		case errors.Is(err, applyCoupon.ErrDraftLocked):
			h.logger.Warn("POST /drafts/{id}/coupon - Draft locked: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgDraftLocked)

		case errors.Is(err, applyCoupon.ErrEmailChanged):
			h.logger.Warn("POST /drafts/{id}/coupon - Email changed: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgEmailChanged)

		case errors.Is(err, applyCoupon.ErrCouponRejected):
			h.logger.Warn("POST /drafts/{id}/coupon - Coupon rejected: draft_id=%s, error=%v", draftID, err)
			handlers.RespondUnprocessable(w, msgCouponRejected)

		case errors.Is(err, applyCoupon.ErrUnavailable):
			h.logger.Error("POST /drafts/{id}/coupon - Backend unavailable: draft_id=%s, error=%v", draftID, err)
			handlers.RespondBadGateway(w, msgUnavailable)

		default:
			h.logger.Error("POST /drafts/{id}/coupon - Failed to apply coupon: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/coupon - Coupon applied: draft_id=%s, discount=%.2f", draftID, result.Discount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
