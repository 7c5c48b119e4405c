package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	hoursPerDay   = 24
	minutesPerDay = hoursPerDay * 60
)

var (
	// ErrInvalidTimeString возвращается, когда строка не в формате HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrOutOfDay возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfDay = errors.New("time is out of day range")
)

// TimeString время суток в формате "HH:MM" (24 часа)
// Нулевое значение ("") означает, что время не задано
type TimeString string

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM"
// Допускается однозначный час ("9:00"), результат всегда нормализован ("09:00")
func NewTimeStringFromString(s string) (TimeString, error) {
	hour, minute, err := parse(s)
	if err != nil {
		return "", err
	}
	return fromMinutes(hour*60 + minute), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат и диапазон значения
func (t TimeString) Validate() error {
	_, _, err := parse(string(t))
	return err
}

// Hour возвращает час (0 для некорректного значения)
func (t TimeString) Hour() int {
	hour, _, _ := parse(string(t))
	return hour
}

// Minute возвращает минуты (0 для некорректного значения)
func (t TimeString) Minute() int {
	_, minute, _ := parse(string(t))
	return minute
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	hour, minute, err := parse(string(t))
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

// AddMinutes прибавляет минуты; переход через полночь не допускается
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}

	if minutes <= -minutesPerDay || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min", ErrOutOfDay, t, minutes)
	}

	total := current + minutes
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min", ErrOutOfDay, t, minutes)
	}

	return fromMinutes(total), nil
}

// AddHours прибавляет целые часы, минуты сохраняются
func (t TimeString) AddHours(hours int) (TimeString, error) {
	if hours <= -hoursPerDay || hours >= hoursPerDay {
		return "", fmt.Errorf("%w: %s%+dh", ErrOutOfDay, t, hours)
	}
	return t.AddMinutes(hours * 60)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// HoursUntil возвращает разницу в целых часах между t и end
func (t TimeString) HoursUntil(end TimeString) (int, error) {
	start, err := t.Minutes()
	if err != nil {
		return 0, err
	}
	finish, err := end.Minutes()
	if err != nil {
		return 0, err
	}
	return (finish - start) / 60, nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner
// PostgreSQL TIME приходит как "HH:MM:SS", секунды отбрасываются
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}

	if len(raw) > 5 {
		raw = raw[:5]
	}
	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parse(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return hour, minute, nil
}

func fromMinutes(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}
