package submit_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("submit_booking: draft not found")

	// ErrIncomplete возвращается, когда не все шаги мастера заполнены
	ErrIncomplete = errors.New("submit_booking: booking is incomplete")

	// ErrRequestInProgress возвращается при повторной отправке или во время проверки купона
	ErrRequestInProgress = errors.New("submit_booking: request already in progress")

	// ErrBookingRejected возвращается, когда бэкенд отклонил бронирование
	ErrBookingRejected = errors.New("submit_booking: booking rejected")

	// ErrUnavailable возвращается, когда бэкенд недоступен
	ErrUnavailable = errors.New("submit_booking: backend unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// RejectedError отказ бэкенда с сообщением для пользователя
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrBookingRejected, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return ErrBookingRejected
}
