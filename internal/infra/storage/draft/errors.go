package draft

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истек
	ErrDraftNotFound = errors.New("draft.store: draft not found")

	// ErrDraftExists возвращается при попытке создать черновик с существующим ID
	ErrDraftExists = errors.New("draft.store: draft already exists")

	// ErrConflict возвращается, когда конкурентные изменения не удалось применить
	ErrConflict = errors.New("draft.store: concurrent update conflict")

	// ErrEncode возвращается при ошибке сериализации черновика
	ErrEncode = errors.New("draft.store: failed to encode draft")

	// ErrDecode возвращается при ошибке десериализации черновика
	ErrDecode = errors.New("draft.store: failed to decode draft")

	// ErrBackend возвращается при ошибке хранилища
	ErrBackend = errors.New("draft.store: backend error")
)
