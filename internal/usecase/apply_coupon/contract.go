package apply_coupon

import (
	"context"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/integrations/studioapi"
)

// DraftStore интерфейс хранилища черновиков
type DraftStore interface {
	Update(ctx context.Context, id string, fn draftStore.UpdateFunc) (*domain.BookingDraft, error)
}

// CouponClient интерфейс клиента для проверки купонов
type CouponClient interface {
	ApplyCoupon(ctx context.Context, req studioapi.ApplyCouponRequest) (*studioapi.CouponResult, error)
}

// Metrics интерфейс метрик купонов
type Metrics interface {
	ObserveCoupon(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
