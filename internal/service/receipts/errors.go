package receipts

import "errors"

var (
	// ErrReceiptNotFound возвращается, когда квитанция не найдена
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
