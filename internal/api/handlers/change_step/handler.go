package change_step

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/selection"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
)

const (
	DirectionNext = "next"
	DirectionPrev = "prev"
)

const (
	msgInvalidDirection = "некорректное направление, ожидается next или prev"
	msgNotFound         = "черновик не найден или истек"
	msgStepIncomplete   = "заполните текущий шаг"
	msgDraftLocked      = "бронирование уже отправляется"
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

// Handle POST /api/v1/drafts/{draftId}/steps/{direction}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	draftID := vars["draftId"]
	direction := vars["direction"]

	var (
		draft *models.DraftResponse
		err   error
	)
	switch direction {
	case DirectionNext:
		draft, err = h.service.Next(r.Context(), draftID)
	case DirectionPrev:
		draft, err = h.service.Prev(r.Context(), draftID)
	default:
		h.logger.Warn("POST /drafts/{id}/steps/{direction} - Invalid direction: %q", direction)
		handlers.RespondBadRequest(w, msgInvalidDirection)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/steps/%s - Draft not found: draft_id=%s", direction, draftID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, drafts.ErrDraftLocked):
			h.logger.Warn("POST /drafts/{id}/steps/%s - Draft locked: draft_id=%s", direction, draftID)
			handlers.RespondConflict(w, msgDraftLocked)

		case errors.Is(err, drafts.ErrStepIncomplete):
			h.logger.Warn("POST /drafts/{id}/steps/%s - Step incomplete: draft_id=%s, error=%v", direction, draftID, err)
			handlers.RespondErrorDetails(w, http.StatusUnprocessableEntity, msgStepIncomplete, stepProblems(err))

		default:
			h.logger.Error("POST /drafts/{id}/steps/%s - Failed to change step: draft_id=%s, error=%v", direction, draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/steps/%s - Step changed: draft_id=%s, step=%d", direction, draftID, draft.Step.Current)
	handlers.RespondJSON(w, http.StatusOK, draft)
}

func stepProblems(err error) []string {
	var stepErr *selection.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Problems
	}
	return nil
}
