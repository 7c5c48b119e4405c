package update_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMutation    = "некорректное изменение черновика"
	msgNotFound           = "черновик не найден или истек"
	msgPrerequisite       = "сначала заполните предыдущие поля"
	msgDraftLocked        = "бронирование уже отправляется"
	msgInvalidInput       = "некорректное значение"
)

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/drafts/{draftId}
// Body: {"mutations": [{"type": "date", "value": "2025-10-15"}, ...]}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var req UpdateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /drafts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	mutations, err := req.ToMutations()
	if err != nil {
		h.logger.Warn("PATCH /drafts/{id} - Invalid mutation: draft_id=%s, error=%v", draftID, err)
		handlers.RespondBadRequest(w, msgInvalidMutation)
		return
	}

	draft, err := h.service.Mutate(r.Context(), draftID, mutations)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("PATCH /drafts/{id} - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, drafts.ErrDraftLocked):
			h.logger.Warn("PATCH /drafts/{id} - Draft locked: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgDraftLocked)

		case errors.Is(err, drafts.ErrPrerequisite):
			h.logger.Warn("PATCH /drafts/{id} - Prerequisite missing: draft_id=%s, error=%v", draftID, err)
			handlers.RespondUnprocessable(w, msgPrerequisite)

		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("PATCH /drafts/{id} - Invalid input: draft_id=%s, error=%v", draftID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /drafts/{id} - Failed to update draft: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /drafts/{id} - Draft updated: draft_id=%s, mutations=%d", draftID, len(mutations))
	handlers.RespondJSON(w, http.StatusOK, draft)
}
