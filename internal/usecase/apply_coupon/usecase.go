package apply_coupon

import (
	"context"
	"errors"
	"fmt"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/integrations/studioapi"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/selection"
)

// UseCase use case для применения купона к черновику
type UseCase struct {
	store   DraftStore
	client  CouponClient
	metrics Metrics
	logger  Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(store DraftStore, client CouponClient, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		store:   store,
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute проверяет купон у бэкенда и сохраняет скидку в черновике.
// При отказе черновик не меняется. Одновременно выполняется не больше одной проверки на черновик.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyCoupon: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ApplyCoupon: draft=%s, coupon=%s", req.DraftID, req.CouponCode)

	// 2. Помечаем черновик: проверка купона в процессе
	var email string
	_, err := uc.store.Update(ctx, req.DraftID, func(d *domain.BookingDraft) error {
		if d.Submitting {
			return ErrDraftLocked
		}
		if d.CouponPending {
			return ErrRequestInProgress
		}
		if d.PersonalInfo.Email == "" {
			return ErrEmailRequired
		}
		email = d.PersonalInfo.Email
		d.CouponPending = true
		return nil
	})
	if err != nil {
		return nil, uc.mapStoreError(req.DraftID, err)
	}

	// 3. Проверяем купон у бэкенда
	result, callErr := uc.client.ApplyCoupon(ctx, studioapi.ApplyCouponRequest{
		Email:    email,
		CouponID: req.CouponCode,
	})

	// 4. Снимаем отметку и, если купон принят, сохраняем скидку.
	// Отметку снимаем даже при отмене запроса клиентом.
	var (
		emailChanged bool
		applyErr     error
	)
	updated, err := uc.store.Update(context.WithoutCancel(ctx), req.DraftID, func(d *domain.BookingDraft) error {
		d.CouponPending = false
		if callErr != nil {
			return nil
		}
		if d.PersonalInfo.Email != email {
			emailChanged = true
			return nil
		}
		applyErr = selection.ApplyCoupon(d, req.CouponCode, result.Discount)
		return nil
	})
	if err != nil && callErr != nil {
		uc.logger.Error("ApplyCoupon: draft=%s failed to release coupon check: %v", req.DraftID, err)
	}

	switch {
	case callErr != nil:
		return nil, uc.mapClientError(req, callErr)
	case err != nil:
		uc.observe(ResultError)
		return nil, uc.mapStoreError(req.DraftID, err)
	case applyErr != nil:
		uc.observe(ResultError)
		uc.logger.Error("ApplyCoupon: draft=%s backend returned unusable discount %v: %v",
			req.DraftID, result.Discount, applyErr)
		return nil, fmt.Errorf("%w: backend returned discount %v", ErrInternal, result.Discount)
	case emailChanged:
		uc.observe(ResultStale)
		uc.logger.Warn("ApplyCoupon: draft=%s email changed during check, coupon=%s discarded",
			req.DraftID, req.CouponCode)
		return nil, ErrEmailChanged
	}

	uc.observe(ResultApplied)
	uc.logger.Info("ApplyCoupon: draft=%s coupon=%s applied, discount=%v%%",
		req.DraftID, req.CouponCode, result.Discount)

	return &Response{
		Draft:    updated,
		Discount: result.Discount,
	}, nil
}

func (uc *UseCase) mapClientError(req *Request, err error) error {
	if errors.Is(err, studioapi.ErrRejected) {
		uc.observe(ResultRejected)
		uc.logger.Warn("ApplyCoupon: draft=%s coupon=%s rejected: %v", req.DraftID, req.CouponCode, err)
		return &RejectedError{Message: studioapi.UserMessage(err)}
	}

	uc.observe(ResultError)
	uc.logger.Error("ApplyCoupon: draft=%s coupon=%s failed: %v", req.DraftID, req.CouponCode, err)
	if errors.Is(err, studioapi.ErrUnavailable) || errors.Is(err, studioapi.ErrInvalidResponse) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: failed to apply coupon: %v", ErrInternal, err)
}

func (uc *UseCase) mapStoreError(draftID string, err error) error {
	switch {
	case errors.Is(err, draftStore.ErrDraftNotFound):
		uc.logger.Warn("ApplyCoupon: draft=%s not found", draftID)
		return ErrDraftNotFound
	case errors.Is(err, ErrDraftLocked), errors.Is(err, ErrRequestInProgress), errors.Is(err, ErrEmailRequired):
		uc.logger.Warn("ApplyCoupon: draft=%s: %v", draftID, err)
		return err
	default:
		uc.logger.Error("ApplyCoupon: draft=%s store error: %v", draftID, err)
		return fmt.Errorf("%w: store error: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveCoupon(result)
	}
}
