package studioapi

import (
	"errors"
	"fmt"
)

// DefaultErrorMessage сообщение, если бэкенд не прислал свое
const DefaultErrorMessage = "something went wrong, please try again"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("studioapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("studioapi client: invalid response")

	// ErrUnavailable возвращается, когда бэкенд недоступен (сеть, таймаут, 5xx)
	ErrUnavailable = errors.New("studioapi client: backend unavailable")

	// ErrRejected возвращается, когда бэкенд отклонил запрос (4xx с сообщением)
	ErrRejected = errors.New("studioapi client: request rejected")
)

// RejectedError ответ 4xx с сообщением бэкенда
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", ErrRejected, e.StatusCode, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// UserMessage извлекает сообщение для пользователя из ошибки клиента
func UserMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	return DefaultErrorMessage
}
