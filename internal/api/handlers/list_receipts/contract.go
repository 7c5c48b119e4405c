package list_receipts

import (
	"context"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/receipts/models"
)

type ReceiptService interface {
	ListByEmail(ctx context.Context, email string) (*models.ReceiptListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
