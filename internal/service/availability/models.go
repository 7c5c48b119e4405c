package availability

import "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"

// Списки доступности (метки метрик)
const (
	ListStartSlots = "start_slots"
	ListEndSlots   = "end_slots"
)

// Result состояние черновика после обновления доступности
type Result struct {
	Draft    *domain.BookingDraft
	Degraded bool // бэкенд не ответил, список пуст
	Stale    bool // ответ устарел и отброшен, в черновике более свежие данные
}
