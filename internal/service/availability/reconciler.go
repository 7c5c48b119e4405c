package availability

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/integrations/studioapi"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/selection"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/types"
)

// Reconciler синхронизирует доступность слотов черновика с бэкендом.
//
// Каждый запрос регистрируется в черновике (generation + ключ входных данных)
// до обращения к бэкенду; ответ применяется только если за это время
// черновик не ушел вперед. Одинаковые запросы в полете объединяются.
type Reconciler struct {
	store   DraftStore
	client  StudioClient
	metrics Metrics
	logger  Logger
	group   singleflight.Group
}

// NewReconciler создает реконсилятор; metrics может быть nil
func NewReconciler(store DraftStore, client StudioClient, metrics Metrics, logger Logger) *Reconciler {
	return &Reconciler{
		store:   store,
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// RefreshStartSlots запрашивает стартовые слоты для студии и даты черновика
func (r *Reconciler) RefreshStartSlots(ctx context.Context, draftID string) (*Result, error) {
	var (
		req        studioapi.AvailableSlotsRequest
		key        string
		generation uint64
	)

	// 1. Регистрируем запрос в черновике
	_, err := r.store.Update(ctx, draftID, func(d *domain.BookingDraft) error {
		if d.Studio == nil || !d.HasDate() {
			return fmt.Errorf("%w: studio and date are required", ErrPrerequisite)
		}
		req = studioapi.AvailableSlotsRequest{
			StudioID: d.Studio.ID,
			Date:     d.Date.Format(domain.DateFormat),
			Duration: requestedDuration(d),
		}
		key = joinKey(req.StudioID, req.Date, strconv.Itoa(req.Duration))
		generation = d.Availability.BeginStartSlots(key)
		return nil
	})
	if err != nil {
		return nil, r.mapStoreError("RefreshStartSlots", draftID, err)
	}

	// 2. Запрашиваем бэкенд (одинаковые запросы объединяются)
	v, shared, fetchErr := r.fetchShared(ctx, "start|"+key, func(fetchCtx context.Context) (interface{}, error) {
		return r.client.GetAvailableSlots(fetchCtx, req)
	})
	if ctx.Err() != nil {
		r.logger.Warn("RefreshStartSlots: draft=%s caller gone: %v", draftID, ctx.Err())
		return nil, fmt.Errorf("RefreshStartSlots: %w", ctx.Err())
	}

	degraded := false
	var slots []domain.StartSlot
	if fetchErr != nil {
		r.logger.Error("RefreshStartSlots: draft=%s studio=%s date=%s: fetch failed, showing no slots: %v",
			draftID, req.StudioID, req.Date, fetchErr)
		degraded = true
	} else {
		slots = r.toStartSlots(draftID, v.([]studioapi.StartSlot))
	}
	if shared {
		r.logger.Info("RefreshStartSlots: draft=%s shared in-flight request key=%s", draftID, key)
	}

	// 3. Применяем ответ, если он не устарел
	var stale bool
	updated, err := r.store.Update(ctx, draftID, func(d *domain.BookingDraft) error {
		stale = !d.Availability.ApplyStartSlots(generation, key, slots, degraded)
		return nil
	})
	if err != nil {
		return nil, r.mapStoreError("RefreshStartSlots", draftID, err)
	}

	if stale {
		r.observeStale(ListStartSlots)
		r.logger.Warn("RefreshStartSlots: draft=%s discarded stale response generation=%d key=%s",
			draftID, generation, key)
	} else {
		r.logger.Info("RefreshStartSlots: draft=%s studio=%s date=%s slots_count=%d",
			draftID, req.StudioID, req.Date, len(slots))
	}

	return &Result{Draft: updated, Degraded: degraded && !stale, Stale: stale}, nil
}

// RefreshEndSlots запрашивает окончания для выбранного начала и пакета
func (r *Reconciler) RefreshEndSlots(ctx context.Context, draftID string) (*Result, error) {
	var (
		req        studioapi.EndSlotsRequest
		key        string
		generation uint64
	)

	_, err := r.store.Update(ctx, draftID, func(d *domain.BookingDraft) error {
		if d.Studio == nil || !d.HasDate() || d.StartSlot.IsZero() || d.Package == nil {
			return fmt.Errorf("%w: studio, date, start slot and package are required", ErrPrerequisite)
		}
		req = studioapi.EndSlotsRequest{
			StartTime: d.StartSlot.String(),
			StudioID:  d.Studio.ID,
			Date:      d.Date.Format(domain.DateFormat),
			PackageID: d.Package.ID,
		}
		key = joinKey(req.StudioID, req.Date, req.StartTime, req.PackageID)
		generation = d.Availability.BeginEndSlots(key)
		return nil
	})
	if err != nil {
		return nil, r.mapStoreError("RefreshEndSlots", draftID, err)
	}

	v, _, fetchErr := r.fetchShared(ctx, "end|"+key, func(fetchCtx context.Context) (interface{}, error) {
		return r.client.GetAvailableEndSlots(fetchCtx, req)
	})
	if ctx.Err() != nil {
		r.logger.Warn("RefreshEndSlots: draft=%s caller gone: %v", draftID, ctx.Err())
		return nil, fmt.Errorf("RefreshEndSlots: %w", ctx.Err())
	}

	degraded := false
	var slots []domain.EndSlot
	if fetchErr != nil {
		r.logger.Error("RefreshEndSlots: draft=%s studio=%s date=%s start=%s: fetch failed, showing no slots: %v",
			draftID, req.StudioID, req.Date, req.StartTime, fetchErr)
		degraded = true
	} else {
		slots = r.toEndSlots(draftID, v.([]studioapi.EndSlot))
	}

	var stale bool
	updated, err := r.store.Update(ctx, draftID, func(d *domain.BookingDraft) error {
		stale = !d.Availability.ApplyEndSlots(generation, key, slots, degraded)
		return nil
	})
	if err != nil {
		return nil, r.mapStoreError("RefreshEndSlots", draftID, err)
	}

	if stale {
		r.observeStale(ListEndSlots)
		r.logger.Warn("RefreshEndSlots: draft=%s discarded stale response generation=%d key=%s",
			draftID, generation, key)
	} else {
		r.logger.Info("RefreshEndSlots: draft=%s start=%s package=%s slots_count=%d",
			draftID, req.StartTime, req.PackageID, len(slots))
	}

	return &Result{Draft: updated, Degraded: degraded && !stale, Stale: stale}, nil
}

// SelectEndSlot выбирает окончание из полученного списка.
// Длительность и цена пакета берутся из слота.
func (r *Reconciler) SelectEndSlot(ctx context.Context, draftID string, endTime string) (*domain.BookingDraft, error) {
	updated, err := r.store.Update(ctx, draftID, func(d *domain.BookingDraft) error {
		return selection.SelectEndSlot(d, endTime)
	})
	if err != nil {
		return nil, r.mapStoreError("SelectEndSlot", draftID, err)
	}

	r.logger.Info("SelectEndSlot: draft=%s start=%s end=%s duration=%dh",
		draftID, updated.StartSlot, updated.EndSlot, updated.Duration)
	return updated, nil
}

// fetchShared объединяет одинаковые запросы в полете. Общий запрос не зависит
// от отмены контекста первого вызывающего и ограничен таймаутом клиента;
// каждый вызывающий ждет ответа не дольше своего ctx.
func (r *Reconciler) fetchShared(
	ctx context.Context,
	key string,
	fetch func(context.Context) (interface{}, error),
) (interface{}, bool, error) {
	ch := r.group.DoChan(key, func() (interface{}, error) {
		return fetch(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (r *Reconciler) toStartSlots(draftID string, raw []studioapi.StartSlot) []domain.StartSlot {
	slots := make([]domain.StartSlot, 0, len(raw))
	for _, s := range raw {
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			r.logger.Warn("RefreshStartSlots: draft=%s skipping malformed slot %q", draftID, s.StartTime)
			continue
		}
		slots = append(slots, domain.StartSlot{StartTime: start})
	}
	return slots
}

func (r *Reconciler) toEndSlots(draftID string, raw []studioapi.EndSlot) []domain.EndSlot {
	slots := make([]domain.EndSlot, 0, len(raw))
	for _, s := range raw {
		end, err := types.NewTimeStringFromString(s.EndTime)
		if err != nil || s.TotalPrice < 0 {
			r.logger.Warn("RefreshEndSlots: draft=%s skipping malformed slot %q price=%v", draftID, s.EndTime, s.TotalPrice)
			continue
		}
		slots = append(slots, domain.EndSlot{EndTime: end, TotalPrice: s.TotalPrice})
	}
	return slots
}

func (r *Reconciler) mapStoreError(op, draftID string, err error) error {
	switch {
	case errors.Is(err, draftStore.ErrDraftNotFound):
		r.logger.Warn("%s: draft=%s not found", op, draftID)
		return ErrDraftNotFound
	case errors.Is(err, ErrPrerequisite):
		r.logger.Warn("%s: draft=%s: %v", op, draftID, err)
		return err
	case errors.Is(err, selection.ErrPrerequisite):
		r.logger.Warn("%s: draft=%s: %v", op, draftID, err)
		return fmt.Errorf("%w: %v", ErrPrerequisite, err)
	case errors.Is(err, selection.ErrInvalidValue), errors.Is(err, selection.ErrUnknownEndSlot):
		r.logger.Warn("%s: draft=%s: %v", op, draftID, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		r.logger.Error("%s: draft=%s store error: %v", op, draftID, err)
		return fmt.Errorf("%w: %s - store error: %v", ErrInternal, op, err)
	}
}

func (r *Reconciler) observeStale(list string) {
	if r.metrics != nil {
		r.metrics.ObserveStaleResponse(list)
	}
}

// requestedDuration длительность для запроса стартовых слотов:
// выбранная, затем длительность пакета по умолчанию, затем минимальная
func requestedDuration(d *domain.BookingDraft) int {
	if d.Duration > 0 {
		return d.Duration
	}
	if d.Package != nil && d.Package.Duration > 0 {
		return d.Package.Duration
	}
	return domain.MinDurationHours
}

func joinKey(parts ...string) string {
	return strings.Join(parts, "|")
}
