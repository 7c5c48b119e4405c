package apply_coupon

import (
	"errors"
	"fmt"
)

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("apply_coupon: draft not found")

	// ErrEmailRequired возвращается, когда в черновике не указан email
	ErrEmailRequired = errors.New("apply_coupon: email is required to apply a coupon")

	// ErrRequestInProgress возвращается, когда купон для черновика уже проверяется
	ErrRequestInProgress = errors.New("apply_coupon: coupon check already in progress")

	// ErrDraftLocked возвращается, когда черновик отправляется
	ErrDraftLocked = errors.New("apply_coupon: draft is being submitted")

	// ErrEmailChanged возвращается, когда email изменился во время проверки купона
	ErrEmailChanged = errors.New("apply_coupon: email changed while the coupon was checked")

	// ErrCouponRejected возвращается, когда бэкенд отклонил купон
	ErrCouponRejected = errors.New("apply_coupon: coupon rejected")

	// ErrUnavailable возвращается, когда бэкенд недоступен
	ErrUnavailable = errors.New("apply_coupon: backend unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_coupon: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_coupon: internal error")
)

// RejectedError отказ бэкенда с сообщением для пользователя
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCouponRejected, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return ErrCouponRejected
}
