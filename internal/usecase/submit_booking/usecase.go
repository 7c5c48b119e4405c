package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/integrations/studioapi"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/pricing"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/selection"
)

// UseCase use case для отправки черновика в бэкенд
type UseCase struct {
	store        DraftStore
	client       BookingClient
	receiptRepo  ReceiptRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(
	store DraftStore,
	client BookingClient,
	receiptRepo ReceiptRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		client:       client,
		receiptRepo:  receiptRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет все шаги, создает бронирование в бэкенде, сохраняет квитанцию и удаляет черновик.
// Пока отправка выполняется, черновик заблокирован: повторная отправка получает ErrRequestInProgress.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SubmitBooking: draft=%s", req.DraftID)

	// 2. Проверяем все шаги и блокируем черновик
	locked, err := uc.store.Update(ctx, req.DraftID, func(d *domain.BookingDraft) error {
		if d.Submitting || d.CouponPending {
			return ErrRequestInProgress
		}
		if err := selection.ValidateAll(d); err != nil {
			return err
		}
		d.Submitting = true
		return nil
	})
	if err != nil {
		return nil, uc.mapStoreError(req.DraftID, err)
	}

	// 3. Суммы пересчитываются из заблокированного снимка
	totals := pricing.Recompute(locked)

	// 4. Создаем бронирование в бэкенде
	created, err := uc.client.CreateBooking(ctx, toBookingRequest(locked, totals))
	if err != nil {
		uc.unlock(ctx, req.DraftID)
		return nil, uc.mapClientError(req.DraftID, err)
	}

	uc.logger.Info("SubmitBooking: draft=%s created booking=%s total=%.2f",
		req.DraftID, created.ID, totals.TotalAfterDiscount)

	// 5. Сохраняем квитанцию; ошибка не отменяет созданное бронирование
	resp := &Response{
		BookingRef: created.ID,
		Receipt:    toReceipt(locked, created, totals, uc.timeProvider.Now()),
	}
	saved, err := uc.receiptRepo.Create(ctx, resp.Receipt)
	if err != nil {
		uc.logger.Error("SubmitBooking: draft=%s booking=%s failed to save receipt: %v",
			req.DraftID, created.ID, err)
	} else {
		resp.Receipt = saved
		resp.ReceiptSaved = true
	}

	// 6. Черновик больше не нужен
	if err := uc.store.Delete(context.WithoutCancel(ctx), req.DraftID); err != nil {
		uc.logger.Error("SubmitBooking: draft=%s failed to delete after booking=%s: %v",
			req.DraftID, created.ID, err)
	}

	uc.observe(ResultCreated)
	return resp, nil
}

// unlock снимает блокировку после неудачной отправки, даже если клиент отменил запрос
func (uc *UseCase) unlock(ctx context.Context, draftID string) {
	_, err := uc.store.Update(context.WithoutCancel(ctx), draftID, func(d *domain.BookingDraft) error {
		d.Submitting = false
		return nil
	})
	if err != nil {
		uc.logger.Error("SubmitBooking: draft=%s failed to unlock: %v", draftID, err)
	}
}

func (uc *UseCase) mapClientError(draftID string, err error) error {
	if errors.Is(err, studioapi.ErrRejected) {
		uc.observe(ResultRejected)
		uc.logger.Warn("SubmitBooking: draft=%s rejected by backend: %v", draftID, err)
		return &RejectedError{Message: studioapi.UserMessage(err)}
	}

	uc.observe(ResultError)
	uc.logger.Error("SubmitBooking: draft=%s failed: %v", draftID, err)
	if errors.Is(err, studioapi.ErrUnavailable) || errors.Is(err, studioapi.ErrInvalidResponse) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
}

func (uc *UseCase) mapStoreError(draftID string, err error) error {
	switch {
	case errors.Is(err, draftStore.ErrDraftNotFound):
		uc.logger.Warn("SubmitBooking: draft=%s not found", draftID)
		return ErrDraftNotFound
	case errors.Is(err, ErrRequestInProgress):
		uc.logger.Warn("SubmitBooking: draft=%s: %v", draftID, err)
		return err
	case errors.Is(err, selection.ErrStepInvalid):
		uc.logger.Warn("SubmitBooking: draft=%s incomplete: %v", draftID, err)
		return fmt.Errorf("%w: %w", ErrIncomplete, err)
	default:
		uc.logger.Error("SubmitBooking: draft=%s store error: %v", draftID, err)
		return fmt.Errorf("%w: store error: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveSubmission(result)
	}
}
