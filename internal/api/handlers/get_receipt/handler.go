package get_receipt

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/receipts"
)

const (
	msgInvalidBookingRef = "некорректный номер бронирования"
	msgNotFound          = "квитанция не найдена"
)

type Handler struct {
	service ReceiptService
	logger  Logger
}

func NewHandler(service ReceiptService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/receipts/{bookingRef}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingRef := mux.Vars(r)["bookingRef"]

	receipt, err := h.service.GetByBookingRef(r.Context(), bookingRef)
	if err != nil {
		switch {
		case errors.Is(err, receipts.ErrInvalidInput):
			h.logger.Warn("GET /receipts/{ref} - Invalid booking ref: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingRef)

		case errors.Is(err, receipts.ErrReceiptNotFound):
			h.logger.Warn("GET /receipts/{ref} - Receipt not found: booking_ref=%s", bookingRef)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /receipts/{ref} - Failed to get receipt: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /receipts/{ref} - Receipt retrieved successfully: booking_ref=%s", bookingRef)
	handlers.RespondJSON(w, http.StatusOK, receipt)
}
