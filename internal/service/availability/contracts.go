package availability

import (
	"context"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/integrations/studioapi"
)

// DraftStore интерфейс хранилища черновиков
type DraftStore interface {
	Get(ctx context.Context, id string) (*domain.BookingDraft, error)
	Update(ctx context.Context, id string, fn draftStore.UpdateFunc) (*domain.BookingDraft, error)
}

// StudioClient интерфейс клиента REST API студий
type StudioClient interface {
	GetAvailableSlots(ctx context.Context, req studioapi.AvailableSlotsRequest) ([]studioapi.StartSlot, error)
	GetAvailableEndSlots(ctx context.Context, req studioapi.EndSlotsRequest) ([]studioapi.EndSlot, error)
}

// Metrics интерфейс метрик реконсилятора
type Metrics interface {
	ObserveStaleResponse(list string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
