package apply_coupon

import "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"

// Результаты проверки купона (метки метрик)
const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"
	ResultError    = "error"
	ResultStale    = "stale"
)

// Request модель запроса на применение купона
type Request struct {
	DraftID    string // ID черновика
	CouponCode string // Код купона
}

// Response модель ответа с обновленным черновиком
type Response struct {
	Draft    *domain.BookingDraft // Черновик с примененной скидкой
	Discount float64              // Процент скидки
}
