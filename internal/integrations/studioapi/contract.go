package studioapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Observer принимает метрики запросов к бэкенду
type Observer interface {
	ObserveUpstream(operation, outcome string, duration time.Duration)
}
