package select_end_slot

import (
	"context"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

type AvailabilityService interface {
	SelectEndSlot(ctx context.Context, draftID string, endTime string) (*domain.BookingDraft, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
