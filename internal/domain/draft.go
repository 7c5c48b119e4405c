package domain

import (
	"time"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/types"
)

// PaymentMethod способ оплаты бронирования
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "CARD"
	PaymentCash PaymentMethod = "CASH"
)

// IsValid returns true for a supported payment method
func (p PaymentMethod) IsValid() bool {
	return p == PaymentCard || p == PaymentCash
}

// StudioRef ссылка на выбранную студию
type StudioRef struct {
	ID        string
	Name      string
	Thumbnail string
}

// PackageRef выбранный пакет услуг
type PackageRef struct {
	ID           string
	Name         string
	PricePerHour float64
	Duration     int    // длительность по умолчанию, часы (0 = не задана)
	Slot         string // метка слота пакета из каталога
}

// SelectedAddOn дополнительная услуга с количеством
type SelectedAddOn struct {
	ID       string
	Name     string
	Price    float64 // цена за единицу
	Quantity int
}

// Total returns price * quantity
func (a SelectedAddOn) Total() float64 {
	return a.Price * float64(a.Quantity)
}

// PersonalInfo контактные данные клиента
type PersonalInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Brand     string
}

// Totals производные суммы черновика.
// Всегда вычисляются заново, сервер бэкенда пересчитывает их при отправке.
type Totals struct {
	PackageTotal       float64
	AddOnsTotal        float64
	Total              float64
	DiscountAmount     float64
	TotalAfterDiscount float64
}

// BookingDraft бронирование в процессе заполнения мастера
type BookingDraft struct {
	ID   string
	Step Step

	Studio    *StudioRef
	Date      time.Time // дата без времени, zero = не выбрана
	StartSlot types.TimeString
	EndSlot   types.TimeString
	Duration  int // часы

	Package      *PackageRef
	PackagePrice float64 // стоимость пакета за выбранную длительность
	AddOns       []SelectedAddOn

	CouponCode string
	Discount   *float64 // процент 0-100, задается только после проверки купона

	PersonalInfo  PersonalInfo
	PaymentMethod PaymentMethod

	Availability Availability

	// Флаги выполняющихся запросов (одна кнопка - один запрос)
	CouponPending bool
	Submitting    bool

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// HasDate returns true if a booking date is selected
func (d *BookingDraft) HasDate() bool {
	return !d.Date.IsZero()
}

// HasCoupon returns true if a validated coupon is applied
func (d *BookingDraft) HasCoupon() bool {
	return d.Discount != nil
}

// DiscountPercent returns the applied discount or 0
func (d *BookingDraft) DiscountPercent() float64 {
	if d.Discount == nil {
		return 0
	}
	return *d.Discount
}

// AddOnIndex returns the position of the add-on in the selection or -1
func (d *BookingDraft) AddOnIndex(addOnID string) int {
	for i, a := range d.AddOns {
		if a.ID == addOnID {
			return i
		}
	}
	return -1
}

// IsExpired returns true if the draft outlived its TTL
func (d *BookingDraft) IsExpired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && now.After(d.ExpiresAt)
}

// Clone returns a deep copy of the draft
func (d *BookingDraft) Clone() *BookingDraft {
	c := *d
	if d.Studio != nil {
		s := *d.Studio
		c.Studio = &s
	}
	if d.Package != nil {
		p := *d.Package
		c.Package = &p
	}
	if d.Discount != nil {
		v := *d.Discount
		c.Discount = &v
	}
	if d.AddOns != nil {
		c.AddOns = append([]SelectedAddOn(nil), d.AddOns...)
	}
	c.Availability = d.Availability.clone()
	return &c
}
