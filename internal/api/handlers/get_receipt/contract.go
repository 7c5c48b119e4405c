package get_receipt

import (
	"context"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/receipts/models"
)

type ReceiptService interface {
	GetByBookingRef(ctx context.Context, bookingRef string) (*models.ReceiptResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
