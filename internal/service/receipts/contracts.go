package receipts

import (
	"context"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

// ReceiptRepository интерфейс репозитория квитанций
type ReceiptRepository interface {
	GetByBookingRef(ctx context.Context, bookingRef string) (*domain.Receipt, error)
	ListByEmail(ctx context.Context, email string, limit uint64) ([]*domain.Receipt, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
