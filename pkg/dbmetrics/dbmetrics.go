// Package dbmetrics оборачивает *sql.DB и пишет длительность запросов в Prometheus.
package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DBExecutor общий интерфейс *sql.DB, *sql.Tx и *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB *sql.DB с метриками запросов
type DB struct {
	db       *sql.DB
	duration *prometheus.HistogramVec
	pool     *prometheus.GaugeVec
}

// New оборачивает соединение; коллекторы регистрируются в reg
func New(db *sql.DB, serviceName string, reg prometheus.Registerer) *DB {
	namespace := strings.ReplaceAll(strings.ToLower(serviceName), "-", "_")
	factory := promauto.With(reg)

	return &DB{
		db: db,
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency by operation and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		pool: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_connections",
			Help:      "Connection pool state: open, in_use, idle",
		}, []string{"state"}),
	}
}

// CollectPoolStats периодически снимает состояние пула соединений до отмены контекста
func (d *DB) CollectPoolStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.recordPoolStats(d.db.Stats())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (d *DB) recordPoolStats(stats sql.DBStats) {
	d.pool.WithLabelValues("open").Set(float64(stats.OpenConnections))
	d.pool.WithLabelValues("in_use").Set(float64(stats.InUse))
	d.pool.WithLabelValues("idle").Set(float64(stats.Idle))
}

// ExecContext выполняет запрос без результата
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	started := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, started, err)
	return res, err
}

// QueryContext выполняет запрос, возвращающий строки
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	started := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, started, err)
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий одну строку.
// Ошибка становится известна только при Scan, поэтому статус здесь всегда ok.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	started := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, started, nil)
	return row
}

// PingContext проверяет соединение
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close закрывает пул соединений
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) observe(query string, started time.Time, err error) {
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	d.duration.WithLabelValues(operation(query), status).Observe(time.Since(started).Seconds())
}

// operation первое слово запроса: select, insert, update, delete
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
