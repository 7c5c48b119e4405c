package receipt

import "errors"

var (
	// ErrReceiptNotFound возвращается, когда квитанция не найдена
	ErrReceiptNotFound = errors.New("receipt.repository: receipt not found")

	// ErrDuplicateBooking возвращается, когда квитанция для бронирования уже сохранена
	ErrDuplicateBooking = errors.New("receipt.repository: receipt for booking already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("receipt.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("receipt.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("receipt.repository: failed to scan row")

	// ErrEncode возвращается, когда не удалось сериализовать дополнительные услуги
	ErrEncode = errors.New("receipt.repository: failed to encode add-ons")
)
