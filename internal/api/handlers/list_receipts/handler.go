package list_receipts

import (
	"errors"
	"net/http"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/receipts"
)

const (
	msgMissingEmail = "email обязателен"
	msgInvalidEmail = "некорректный email"
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

// Handle GET /api/v1/receipts?email=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /receipts - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	result, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, receipts.ErrInvalidInput):
			h.logger.Warn("GET /receipts - Invalid email: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmail)

		default:
			h.logger.Error("GET /receipts - Failed to list receipts: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /receipts - Receipts retrieved successfully: count=%d", len(result.Receipts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
