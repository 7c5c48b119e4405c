package submit_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/selection"
	submitBooking "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/usecase/submit_booking"
)

const (
	msgInvalidDraftID  = "некорректный ID черновика"
	msgNotFound        = "черновик не найден или истек"
	msgIncomplete      = "заполните все шаги бронирования"
	msgInProgress      = "бронирование уже отправляется"
	msgBookingRejected = "бронирование отклонено"
	msgUnavailable     = "сервис бронирования временно недоступен"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{DraftID: draftID})
	if err != nil {
		var (
			rejected *submitBooking.RejectedError
			stepErr  *selection.StepError
		)

		switch {
		case errors.As(err, &rejected):
			h.logger.Warn("POST /drafts/{id}/submit - Booking rejected: draft_id=%s, message=%s", draftID, rejected.Message)
			handlers.RespondUnprocessable(w, handlers.MessageOrDefault(rejected.Message, msgBookingRejected))

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /drafts/{id}/submit - Invalid draft ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDraftID)

		case errors.Is(err, submitBooking.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/submit - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, submitBooking.ErrIncomplete):
			h.logger.Warn("POST /drafts/{id}/submit - Draft incomplete: draft_id=%s, error=%v", draftID, err)
			var details []string
			if errors.As(err, &stepErr) {
				details = stepErr.Problems
			}
			handlers.RespondErrorDetails(w, http.StatusUnprocessableEntity, msgIncomplete, details)

		case errors.Is(err, submitBooking.ErrRequestInProgress):
			h.logger.Warn("POST /drafts/{id}/submit - Request in progress: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgInProgress)

		case errors.Is(err, submitBooking.ErrUnavailable):
			h.logger.Error("POST /drafts/{id}/submit - Backend unavailable: draft_id=%s, error=%v", draftID, err)
			handlers.RespondBadGateway(w, msgUnavailable)

		default:
			h.logger.Error("POST /drafts/{id}/submit - Failed to submit booking: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/submit - Booking created: draft_id=%s, booking_ref=%s, receipt_saved=%t",
		draftID, result.BookingRef, result.ReceiptSaved)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
