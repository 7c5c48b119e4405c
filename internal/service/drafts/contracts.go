package drafts

import (
	"context"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
)

// DraftStore интерфейс хранилища черновиков
type DraftStore interface {
	Create(ctx context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error)
	Get(ctx context.Context, id string) (*domain.BookingDraft, error)
	Update(ctx context.Context, id string, fn draftStore.UpdateFunc) (*domain.BookingDraft, error)
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
