package submit_booking

import (
	"context"
	"time"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/integrations/studioapi"
)

// DraftStore интерфейс хранилища черновиков
type DraftStore interface {
	Update(ctx context.Context, id string, fn draftStore.UpdateFunc) (*domain.BookingDraft, error)
	Delete(ctx context.Context, id string) error
}

// BookingClient интерфейс клиента для создания бронирования
type BookingClient interface {
	CreateBooking(ctx context.Context, req studioapi.CreateBookingRequest) (*studioapi.CreatedBooking, error)
}

// ReceiptRepository интерфейс репозитория квитанций
type ReceiptRepository interface {
	Create(ctx context.Context, rec *domain.Receipt) (*domain.Receipt, error)
}

// Metrics интерфейс метрик отправки
type Metrics interface {
	ObserveSubmission(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
