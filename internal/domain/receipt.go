package domain

import (
	"time"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/types"
)

// ReceiptStatus represents the status of a submitted booking as reported by the backend
type ReceiptStatus string

const (
	ReceiptPending   ReceiptStatus = "pending"
	ReceiptConfirmed ReceiptStatus = "confirmed"
)

// Receipt represents a booking submitted through the wizard.
// The studio backend owns the booking itself; the receipt is the snapshot the customer saw.
type Receipt struct {
	ID         int64
	BookingRef string // ID бронирования в бэкенде
	Status     ReceiptStatus

	StudioID      string
	StudioName    string
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours int

	PackageID           string
	PackageName         string
	PackagePricePerHour float64
	AddOns              []SelectedAddOn

	CouponCode      *string
	DiscountPercent float64
	Totals          Totals

	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Brand         *string
	PaymentMethod PaymentMethod

	CreatedAt time.Time
}

// IsDiscounted returns true if a coupon reduced the total
func (r *Receipt) IsDiscounted() bool {
	return r.CouponCode != nil && r.Totals.DiscountAmount > 0
}

// CustomerName returns the full name of the customer
func (r *Receipt) CustomerName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}
