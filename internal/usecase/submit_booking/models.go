package submit_booking

import "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"

// Результаты отправки (метки метрик)
const (
	ResultCreated  = "created"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Request модель запроса на отправку черновика
type Request struct {
	DraftID string // ID черновика
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingRef   string          // ID бронирования в бэкенде
	Receipt      *domain.Receipt // Квитанция; ID = 0, если сохранить не удалось
	ReceiptSaved bool            // Квитанция сохранена в БД
}
