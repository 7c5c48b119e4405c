package update_draft

import (
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/selection"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
)

// UpdateDraftRequest HTTP request model.
// Изменения применяются по порядку и атомарно: при ошибке черновик не меняется.
type UpdateDraftRequest struct {
	Mutations []models.MutationRequest `json:"mutations"`
}

// ToMutations конвертирует HTTP запрос в изменения черновика
func (r *UpdateDraftRequest) ToMutations() ([]selection.Mutation, error) {
	return models.ToMutations(r.Mutations)
}
