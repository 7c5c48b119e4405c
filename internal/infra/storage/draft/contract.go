package draft

import (
	"context"
	"time"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

// UpdateFunc изменяет черновик на месте. Ошибка отменяет сохранение.
type UpdateFunc func(d *domain.BookingDraft) error

// Store общий контракт хранилищ черновиков
type Store interface {
	Create(ctx context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error)
	Get(ctx context.Context, id string) (*domain.BookingDraft, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*domain.BookingDraft, error)
	Delete(ctx context.Context, id string) error
}

// Gauge принимает текущее количество черновиков (метрики)
type Gauge interface {
	SetActiveDrafts(n int)
}

type clock func() time.Time
