package get_end_slots

import (
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/availability"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
)

// SlotsResponse HTTP response model.
// Слоты лежат в draft.availability; флаги описывают результат этого запроса.
type SlotsResponse struct {
	Draft    *models.DraftResponse `json:"draft"`
	Degraded bool                  `json:"degraded"` // бэкенд не ответил, список пуст
	Stale    bool                  `json:"stale"`    // ответ отброшен, черновик изменился
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(res *availability.Result) *SlotsResponse {
	return &SlotsResponse{
		Draft:    models.FromDomainDraft(res.Draft),
		Degraded: res.Degraded,
		Stale:    res.Stale,
	}
}
