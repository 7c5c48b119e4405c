package selection

import "errors"

var (
	// ErrStepInvalid возвращается, когда текущий шаг не прошел валидацию
	ErrStepInvalid = errors.New("selection: step is not complete")

	// ErrInvalidValue возвращается при некорректном значении поля
	ErrInvalidValue = errors.New("selection: invalid value")

	// ErrPrerequisite возвращается, когда поле нельзя задать до выбора зависимых полей
	ErrPrerequisite = errors.New("selection: prerequisite not selected")

	// ErrSlotOutOfDay возвращается, когда слот выходит за пределы суток
	ErrSlotOutOfDay = errors.New("selection: slot does not fit into the day")

	// ErrUnknownEndSlot возвращается, когда время окончания не из списка бэкенда
	ErrUnknownEndSlot = errors.New("selection: end slot is not offered")
)
