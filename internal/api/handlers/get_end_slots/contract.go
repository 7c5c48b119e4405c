package get_end_slots

import (
	"context"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/availability"
)

type AvailabilityService interface {
	RefreshEndSlots(ctx context.Context, draftID string) (*availability.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
