package change_step

import (
	"context"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
)

type DraftService interface {
	Next(ctx context.Context, id string) (*models.DraftResponse, error)
	Prev(ctx context.Context, id string) (*models.DraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
