package create_draft

import (
	"errors"
	"net/http"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные черновика"
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

// Handle POST /api/v1/drafts
// Тело необязательно: {"studio": {...}, "step": 2}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDraftRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("POST /drafts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /drafts - Failed to create draft: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts - Draft created: draft_id=%s, step=%d", draft.ID, draft.Step.Current)
	handlers.RespondJSON(w, http.StatusCreated, draft)
}
