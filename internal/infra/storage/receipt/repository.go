package receipt

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/psqlbuilder"
)

const (
	table = "receipts"

	// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"booking_ref",
	"status",
	"studio_id",
	"studio_name",
	"booking_date",
	"start_time",
	"end_time",
	"duration_hours",
	"package_id",
	"package_name",
	"package_price_per_hour",
	"add_ons",
	"coupon_code",
	"discount_percent",
	"package_total",
	"add_ons_total",
	"total",
	"discount_amount",
	"total_after_discount",
	"first_name",
	"last_name",
	"email",
	"phone",
	"brand",
	"payment_method",
	"created_at",
}

// Repository репозиторий квитанций отправленных бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория квитанций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// addOnRow дополнительная услуга в колонке add_ons (JSONB)
type addOnRow struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Create сохраняет квитанцию. booking_ref уникален: повторное сохранение возвращает ErrDuplicateBooking.
func (r *Repository) Create(ctx context.Context, rec *domain.Receipt) (*domain.Receipt, error) {
	addOns, err := encodeAddOns(rec.AddOns)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[1:len(columns)-1]...).
		Values(
			rec.BookingRef,
			rec.Status,
			rec.StudioID,
			rec.StudioName,
			rec.BookingDate,
			rec.StartTime,
			rec.EndTime,
			rec.DurationHours,
			rec.PackageID,
			rec.PackageName,
			rec.PackagePricePerHour,
			addOns,
			rec.CouponCode,
			rec.DiscountPercent,
			rec.Totals.PackageTotal,
			rec.Totals.AddOnsTotal,
			rec.Totals.Total,
			rec.Totals.DiscountAmount,
			rec.Totals.TotalAfterDiscount,
			rec.FirstName,
			rec.LastName,
			rec.Email,
			rec.Phone,
			rec.Brand,
			rec.PaymentMethod,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rec.CreatedAt = createdAt.Time
	return rec, nil
}

// GetByBookingRef получает квитанцию по номеру бронирования
func (r *Repository) GetByBookingRef(ctx context.Context, bookingRef string) (*domain.Receipt, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_ref": bookingRef}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingRef - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := scanReceipt(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingRef - %v", ErrScanRow, err)
	}

	return rec, nil
}

// ListByEmail получает квитанции клиента, новые первыми
func (r *Repository) ListByEmail(ctx context.Context, email string, limit uint64) ([]*domain.Receipt, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"email": email}).
		OrderBy("created_at DESC", "id DESC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	receipts := make([]*domain.Receipt, 0)
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEmail - %v", ErrScanRow, err)
		}
		receipts = append(receipts, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - rows error: %v", ErrScanRow, err)
	}

	return receipts, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReceipt(row rowScanner) (*domain.Receipt, error) {
	var (
		rec       domain.Receipt
		addOns    []byte
		createdAt sql.NullTime
	)

	err := row.Scan(
		&rec.ID,
		&rec.BookingRef,
		&rec.Status,
		&rec.StudioID,
		&rec.StudioName,
		&rec.BookingDate,
		&rec.StartTime,
		&rec.EndTime,
		&rec.DurationHours,
		&rec.PackageID,
		&rec.PackageName,
		&rec.PackagePricePerHour,
		&addOns,
		&rec.CouponCode,
		&rec.DiscountPercent,
		&rec.Totals.PackageTotal,
		&rec.Totals.AddOnsTotal,
		&rec.Totals.Total,
		&rec.Totals.DiscountAmount,
		&rec.Totals.TotalAfterDiscount,
		&rec.FirstName,
		&rec.LastName,
		&rec.Email,
		&rec.Phone,
		&rec.Brand,
		&rec.PaymentMethod,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.AddOns, err = decodeAddOns(addOns)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = createdAt.Time

	return &rec, nil
}

// encodeAddOns возвращает JSON строкой: []byte драйвер отправил бы как bytea
func encodeAddOns(addOns []domain.SelectedAddOn) (string, error) {
	rows := make([]addOnRow, 0, len(addOns))
	for _, a := range addOns {
		rows = append(rows, addOnRow{ID: a.ID, Name: a.Name, Price: a.Price, Quantity: a.Quantity})
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return string(data), nil
}

func decodeAddOns(data []byte) ([]domain.SelectedAddOn, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var rows []addOnRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode add_ons: %v", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	addOns := make([]domain.SelectedAddOn, 0, len(rows))
	for _, a := range rows {
		addOns = append(addOns, domain.SelectedAddOn{ID: a.ID, Name: a.Name, Price: a.Price, Quantity: a.Quantity})
	}
	return addOns, nil
}
