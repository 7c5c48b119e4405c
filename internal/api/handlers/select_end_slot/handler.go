package select_end_slot

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/availability"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingEndTime     = "время окончания обязательно"
	msgNotFound           = "черновик не найден или истек"
	msgPrerequisite       = "сначала выберите время начала"
	msgSlotNotOffered     = "выбранное время окончания недоступно"
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

// Handle PUT /api/v1/drafts/{draftId}/end-slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var req SelectEndSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /drafts/{id}/end-slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.EndTime) == "" {
		handlers.RespondBadRequest(w, msgMissingEndTime)
		return
	}

	draft, err := h.service.SelectEndSlot(r.Context(), draftID, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrDraftNotFound):
			h.logger.Warn("PUT /drafts/{id}/end-slot - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrPrerequisite):
			h.logger.Warn("PUT /drafts/{id}/end-slot - Prerequisite missing: draft_id=%s", draftID)
			handlers.RespondUnprocessable(w, msgPrerequisite)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /drafts/{id}/end-slot - Slot not offered: draft_id=%s, end=%s", draftID, req.EndTime)
			handlers.RespondUnprocessable(w, msgSlotNotOffered)

		default:
			h.logger.Error("PUT /drafts/{id}/end-slot - Failed to select slot: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /drafts/{id}/end-slot - End slot selected: draft_id=%s, end=%s", draftID, req.EndTime)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainDraft(draft))
}
