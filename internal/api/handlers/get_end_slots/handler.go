package get_end_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/availability"
)

const (
	msgNotFound     = "черновик не найден или истек"
	msgPrerequisite = "сначала выберите студию, дату, начало и пакет"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/drafts/{draftId}/end-slots
// Недоступность бэкенда не ошибка: возвращается пустой список и degraded=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	result, err := h.service.RefreshEndSlots(r.Context(), draftID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrDraftNotFound):
			h.logger.Warn("GET /drafts/{id}/end-slots - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrPrerequisite):
			h.logger.Warn("GET /drafts/{id}/end-slots - Prerequisite missing: draft_id=%s", draftID)
			handlers.RespondUnprocessable(w, msgPrerequisite)

		default:
			h.logger.Error("GET /drafts/{id}/end-slots - Failed to refresh slots: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /drafts/{id}/end-slots - Slots refreshed: draft_id=%s, slots_count=%d, degraded=%t, stale=%t",
		draftID, len(result.Draft.Availability.EndSlots), result.Degraded, result.Stale)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
