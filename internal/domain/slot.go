package domain

import "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/types"

// StartSlot время начала, доступное для бронирования
type StartSlot struct {
	StartTime types.TimeString
}

// EndSlot допустимое время окончания для выбранного начала
type EndSlot struct {
	EndTime    types.TimeString
	TotalPrice float64 // стоимость пакета за интервал, рассчитанная бэкендом
}

// Availability данные о доступности слотов, полученные от бэкенда.
//
// Каждый запрос увеличивает generation и запоминает ключ входных данных.
// Ответ применяется только если generation и ключ не изменились,
// иначе он устарел и отбрасывается.
type Availability struct {
	StartSlots           []StartSlot
	StartSlotsKey        string
	StartSlotsGeneration uint64
	StartSlotsDegraded   bool

	EndSlots           []EndSlot
	EndSlotsKey        string
	EndSlotsGeneration uint64
	EndSlotsDegraded   bool
}

// BeginStartSlots регистрирует новый запрос стартовых слотов
func (a *Availability) BeginStartSlots(key string) uint64 {
	a.StartSlotsGeneration++
	a.StartSlotsKey = key
	return a.StartSlotsGeneration
}

// ApplyStartSlots сохраняет ответ, если он актуален. Возвращает false для устаревшего ответа.
func (a *Availability) ApplyStartSlots(generation uint64, key string, slots []StartSlot, degraded bool) bool {
	if generation != a.StartSlotsGeneration || key != a.StartSlotsKey {
		return false
	}
	a.StartSlots = slots
	a.StartSlotsDegraded = degraded
	return true
}

// ResetStartSlots сбрасывает список и делает устаревшими запросы в полете
func (a *Availability) ResetStartSlots() {
	a.StartSlotsGeneration++
	a.StartSlotsKey = ""
	a.StartSlots = nil
	a.StartSlotsDegraded = false
}

// BeginEndSlots регистрирует новый запрос слотов окончания
func (a *Availability) BeginEndSlots(key string) uint64 {
	a.EndSlotsGeneration++
	a.EndSlotsKey = key
	return a.EndSlotsGeneration
}

// ApplyEndSlots сохраняет ответ, если он актуален
func (a *Availability) ApplyEndSlots(generation uint64, key string, slots []EndSlot, degraded bool) bool {
	if generation != a.EndSlotsGeneration || key != a.EndSlotsKey {
		return false
	}
	a.EndSlots = slots
	a.EndSlotsDegraded = degraded
	return true
}

// ResetEndSlots сбрасывает список слотов окончания
func (a *Availability) ResetEndSlots() {
	a.EndSlotsGeneration++
	a.EndSlotsKey = ""
	a.EndSlots = nil
	a.EndSlotsDegraded = false
}

// FindEndSlot ищет слот окончания среди полученных от бэкенда
func (a *Availability) FindEndSlot(end types.TimeString) (EndSlot, bool) {
	for _, s := range a.EndSlots {
		if s.EndTime == end {
			return s, true
		}
	}
	return EndSlot{}, false
}

func (a Availability) clone() Availability {
	if a.StartSlots != nil {
		a.StartSlots = append([]StartSlot(nil), a.StartSlots...)
	}
	if a.EndSlots != nil {
		a.EndSlots = append([]EndSlot(nil), a.EndSlots...)
	}
	return a
}
