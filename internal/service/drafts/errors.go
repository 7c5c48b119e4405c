package drafts

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истек
	ErrDraftNotFound = errors.New("draft not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrPrerequisite возвращается, когда поле нельзя задать до заполнения предыдущих
	ErrPrerequisite = errors.New("previous selection is required")

	// ErrStepIncomplete возвращается при переходе дальше с незаполненного шага
	ErrStepIncomplete = errors.New("current step is incomplete")

	// ErrDraftLocked возвращается при изменении черновика во время отправки
	ErrDraftLocked = errors.New("draft is being submitted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("drafts: internal error")
)
