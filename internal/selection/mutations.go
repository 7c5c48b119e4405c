// Package selection holds the state machine of the booking wizard:
// typed field mutations with their cascading resets and step navigation.
package selection

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/slotmath"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/types"
)

// Mutation изменение одного поля черновика
type Mutation interface {
	Name() string
	apply(d *domain.BookingDraft) error
}

// Apply применяет мутации по порядку.
// Либо применяются все, либо черновик остается без изменений.
func Apply(d *domain.BookingDraft, mutations ...Mutation) error {
	work := d.Clone()
	for _, m := range mutations {
		if m == nil {
			return fmt.Errorf("%w: nil mutation", ErrInvalidValue)
		}
		if err := m.apply(work); err != nil {
			return fmt.Errorf("%s: %w", m.Name(), err)
		}
	}
	*d = *work
	return nil
}

// SetStudio выбирает студию. Сбрасывает слоты и длительность.
type SetStudio struct {
	Studio domain.StudioRef
}

func (SetStudio) Name() string { return "set_studio" }

func (m SetStudio) apply(d *domain.BookingDraft) error {
	if strings.TrimSpace(m.Studio.ID) == "" {
		return fmt.Errorf("%w: studio id is required", ErrInvalidValue)
	}
	studio := m.Studio
	d.Studio = &studio
	clearTimeSelection(d)
	d.Availability.ResetStartSlots()
	return nil
}

// SetDate выбирает дату. Сбрасывает студию, слоты и длительность.
type SetDate struct {
	Date time.Time
}

func (SetDate) Name() string { return "set_date" }

func (m SetDate) apply(d *domain.BookingDraft) error {
	if m.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidValue)
	}
	y, mo, day := m.Date.Date()
	d.Date = time.Date(y, mo, day, 0, 0, 0, 0, time.UTC)
	d.Studio = nil
	clearTimeSelection(d)
	d.Availability.ResetStartSlots()
	return nil
}

// SetStartSlot выбирает время начала. Сбрасывает окончание, длительность обнуляется.
type SetStartSlot struct {
	StartTime string
}

func (SetStartSlot) Name() string { return "set_start_slot" }

func (m SetStartSlot) apply(d *domain.BookingDraft) error {
	if d.Studio == nil || !d.HasDate() {
		return fmt.Errorf("%w: studio and date must be selected first", ErrPrerequisite)
	}
	start, err := types.NewTimeStringFromString(m.StartTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	d.StartSlot = start
	d.EndSlot = ""
	d.Duration = 0
	d.PackagePrice = 0
	d.Availability.ResetEndSlots()
	return nil
}

// SetDuration задает длительность в часах; окончание и цена пакета вычисляются.
// Список начальных слотов запрашивался под прежнюю длительность и сбрасывается.
type SetDuration struct {
	Hours int
}

func (SetDuration) Name() string { return "set_duration" }

func (m SetDuration) apply(d *domain.BookingDraft) error {
	if d.StartSlot.IsZero() {
		return fmt.Errorf("%w: start slot must be selected first", ErrPrerequisite)
	}
	if m.Hours < domain.MinDurationHours || m.Hours > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration must be between %d and %d hours",
			ErrInvalidValue, domain.MinDurationHours, domain.MaxDurationHours)
	}

	end, ok := slotmath.ComputeEndTime(d.StartSlot.String(), m.Hours)
	if !ok {
		return fmt.Errorf("%w: %s + %dh", ErrSlotOutOfDay, d.StartSlot, m.Hours)
	}

	if d.Duration != m.Hours {
		d.Availability.ResetStartSlots()
	}
	d.EndSlot = types.TimeString(end)
	d.Duration = m.Hours
	d.PackagePrice = packagePrice(d)
	return nil
}

// SetPackage выбирает пакет. Существующая длительность переоценивается.
type SetPackage struct {
	Package domain.PackageRef
}

func (SetPackage) Name() string { return "set_package" }

func (m SetPackage) apply(d *domain.BookingDraft) error {
	if strings.TrimSpace(m.Package.ID) == "" {
		return fmt.Errorf("%w: package id is required", ErrInvalidValue)
	}
	if !validAmount(m.Package.PricePerHour) {
		return fmt.Errorf("%w: package price must be a non-negative number", ErrInvalidValue)
	}
	if m.Package.Duration < 0 {
		return fmt.Errorf("%w: package duration must not be negative", ErrInvalidValue)
	}

	pkg := m.Package
	d.Package = &pkg
	d.PackagePrice = packagePrice(d)
	// слоты окончания и их цены зависят от пакета
	d.Availability.ResetEndSlots()
	return nil
}

// SetAddOnQuantity задает количество дополнительной услуги; 0 удаляет ее из выбора.
type SetAddOnQuantity struct {
	AddOn domain.SelectedAddOn
}

func (SetAddOnQuantity) Name() string { return "set_add_on_quantity" }

func (m SetAddOnQuantity) apply(d *domain.BookingDraft) error {
	if err := validateAddOn(m.AddOn); err != nil {
		return err
	}
	setAddOnQuantity(d, m.AddOn, m.AddOn.Quantity)
	return nil
}

// IncrementAddOn добавляет одну единицу дополнительной услуги
type IncrementAddOn struct {
	AddOn domain.SelectedAddOn
}

func (IncrementAddOn) Name() string { return "increment_add_on" }

func (m IncrementAddOn) apply(d *domain.BookingDraft) error {
	if err := validateAddOn(m.AddOn); err != nil {
		return err
	}
	quantity := 1
	if i := d.AddOnIndex(m.AddOn.ID); i >= 0 {
		quantity = d.AddOns[i].Quantity + 1
	}
	if quantity > domain.MaxAddOnQuantity {
		return fmt.Errorf("%w: add-on quantity must not exceed %d", ErrInvalidValue, domain.MaxAddOnQuantity)
	}
	setAddOnQuantity(d, m.AddOn, quantity)
	return nil
}

// DecrementAddOn убирает одну единицу; неизвестная услуга игнорируется
type DecrementAddOn struct {
	AddOnID string
}

func (DecrementAddOn) Name() string { return "decrement_add_on" }

func (m DecrementAddOn) apply(d *domain.BookingDraft) error {
	i := d.AddOnIndex(m.AddOnID)
	if i < 0 {
		return nil
	}
	setAddOnQuantity(d, d.AddOns[i], d.AddOns[i].Quantity-1)
	return nil
}

// SetPersonalInfoFirstName задает имя клиента
type SetPersonalInfoFirstName struct {
	Value string
}

func (SetPersonalInfoFirstName) Name() string { return "set_personal_info_first_name" }

func (m SetPersonalInfoFirstName) apply(d *domain.BookingDraft) error {
	v, err := boundedText(m.Value, domain.MaxNameLength)
	if err != nil {
		return err
	}
	d.PersonalInfo.FirstName = v
	return nil
}

// SetPersonalInfoLastName задает фамилию клиента
type SetPersonalInfoLastName struct {
	Value string
}

func (SetPersonalInfoLastName) Name() string { return "set_personal_info_last_name" }

func (m SetPersonalInfoLastName) apply(d *domain.BookingDraft) error {
	v, err := boundedText(m.Value, domain.MaxNameLength)
	if err != nil {
		return err
	}
	d.PersonalInfo.LastName = v
	return nil
}

// SetPersonalInfoEmail задает email. Купон привязан к email и снимается при его смене.
type SetPersonalInfoEmail struct {
	Value string
}

func (SetPersonalInfoEmail) Name() string { return "set_personal_info_email" }

func (m SetPersonalInfoEmail) apply(d *domain.BookingDraft) error {
	v := strings.ToLower(strings.TrimSpace(m.Value))
	if v != d.PersonalInfo.Email {
		clearCoupon(d)
	}
	d.PersonalInfo.Email = v
	return nil
}

// SetPersonalInfoPhone задает телефон
type SetPersonalInfoPhone struct {
	Value string
}

func (SetPersonalInfoPhone) Name() string { return "set_personal_info_phone" }

func (m SetPersonalInfoPhone) apply(d *domain.BookingDraft) error {
	d.PersonalInfo.Phone = strings.TrimSpace(m.Value)
	return nil
}

// SetPersonalInfoBrand задает бренд / проект клиента
type SetPersonalInfoBrand struct {
	Value string
}

func (SetPersonalInfoBrand) Name() string { return "set_personal_info_brand" }

func (m SetPersonalInfoBrand) apply(d *domain.BookingDraft) error {
	v, err := boundedText(m.Value, domain.MaxBrandLength)
	if err != nil {
		return err
	}
	d.PersonalInfo.Brand = v
	return nil
}

// SetPaymentMethod задает способ оплаты
type SetPaymentMethod struct {
	Method domain.PaymentMethod
}

func (SetPaymentMethod) Name() string { return "set_payment_method" }

func (m SetPaymentMethod) apply(d *domain.BookingDraft) error {
	method := domain.PaymentMethod(strings.ToUpper(string(m.Method)))
	if !method.IsValid() {
		return fmt.Errorf("%w: unsupported payment method %q", ErrInvalidValue, m.Method)
	}
	d.PaymentMethod = method
	return nil
}

// ClearCoupon снимает примененный купон
type ClearCoupon struct{}

func (ClearCoupon) Name() string { return "clear_coupon" }

func (ClearCoupon) apply(d *domain.BookingDraft) error {
	clearCoupon(d)
	return nil
}

// SelectEndSlot выбирает окончание из списка, полученного от бэкенда.
// Длительность = час окончания - час начала, цена пакета берется из слота.
func SelectEndSlot(d *domain.BookingDraft, endTime string) error {
	if d.StartSlot.IsZero() {
		return fmt.Errorf("%w: start slot must be selected first", ErrPrerequisite)
	}
	end, err := types.NewTimeStringFromString(endTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	slot, ok := d.Availability.FindEndSlot(end)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEndSlot, end)
	}

	hours := end.Hour() - d.StartSlot.Hour()
	if hours < domain.MinDurationHours {
		return fmt.Errorf("%w: end slot %s is not after start slot %s", ErrInvalidValue, end, d.StartSlot)
	}
	if end.Minute() != d.StartSlot.Minute() {
		return fmt.Errorf("%w: end slot %s is not a whole number of hours after %s", ErrInvalidValue, end, d.StartSlot)
	}

	if d.Duration != hours {
		d.Availability.ResetStartSlots()
	}
	d.EndSlot = end
	d.Duration = hours
	if validAmount(slot.TotalPrice) {
		d.PackagePrice = slot.TotalPrice
	} else {
		d.PackagePrice = packagePrice(d)
	}
	return nil
}

// ApplyCoupon сохраняет купон, подтвержденный бэкендом
func ApplyCoupon(d *domain.BookingDraft, code string, discount float64) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: coupon code is required", ErrInvalidValue)
	}
	if math.IsNaN(discount) || discount < domain.MinDiscountPercent || discount > domain.MaxDiscountPercent {
		return fmt.Errorf("%w: discount %v is out of range", ErrInvalidValue, discount)
	}
	d.CouponCode = code
	d.Discount = &discount
	return nil
}

func clearTimeSelection(d *domain.BookingDraft) {
	d.StartSlot = ""
	d.EndSlot = ""
	d.Duration = 0
	d.PackagePrice = 0
	d.Availability.ResetEndSlots()
}

func clearCoupon(d *domain.BookingDraft) {
	d.CouponCode = ""
	d.Discount = nil
}

func setAddOnQuantity(d *domain.BookingDraft, addOn domain.SelectedAddOn, quantity int) {
	i := d.AddOnIndex(addOn.ID)

	if quantity <= 0 {
		if i >= 0 {
			d.AddOns = append(d.AddOns[:i:i], d.AddOns[i+1:]...)
		}
		if len(d.AddOns) == 0 {
			d.AddOns = nil
		}
		return
	}

	addOn.Quantity = quantity
	if i >= 0 {
		d.AddOns[i] = addOn
		return
	}
	d.AddOns = append(d.AddOns, addOn)
}

func validateAddOn(a domain.SelectedAddOn) error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: add-on id is required", ErrInvalidValue)
	}
	if !validAmount(a.Price) {
		return fmt.Errorf("%w: add-on price must be a non-negative number", ErrInvalidValue)
	}
	if a.Quantity > domain.MaxAddOnQuantity {
		return fmt.Errorf("%w: add-on quantity must not exceed %d", ErrInvalidValue, domain.MaxAddOnQuantity)
	}
	return nil
}

func packagePrice(d *domain.BookingDraft) float64 {
	if d.Package == nil || d.Duration <= 0 {
		return 0
	}
	return slotmath.ComputeTotalPrice(d.Duration, d.Package.PricePerHour)
}

func boundedText(v string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if len([]rune(v)) > max {
		return "", fmt.Errorf("%w: value longer than %d characters", ErrInvalidValue, max)
	}
	return v, nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
