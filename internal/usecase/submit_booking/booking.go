package submit_booking

import (
	"strings"
	"time"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/integrations/studioapi"
)

// toBookingRequest собирает запрос к бэкенду из проверенного черновика
func toBookingRequest(d *domain.BookingDraft, totals domain.Totals) studioapi.CreateBookingRequest {
	req := studioapi.CreateBookingRequest{
		PersonalInfo: studioapi.PersonalInfo{
			FirstName: d.PersonalInfo.FirstName,
			LastName:  d.PersonalInfo.LastName,
			Email:     d.PersonalInfo.Email,
			Phone:     d.PersonalInfo.Phone,
			Brand:     d.PersonalInfo.Brand,
		},
		StudioID:      d.Studio.ID,
		Date:          d.Date.Format(domain.DateFormat),
		StartSlot:     d.StartSlot.String(),
		EndSlot:       d.EndSlot.String(),
		Duration:      d.Duration,
		PackageID:     d.Package.ID,
		AddOns:        make([]studioapi.AddOnItem, 0, len(d.AddOns)),
		PaymentMethod: string(d.PaymentMethod),
		Totals: studioapi.ClientTotals{
			PackageTotal:       totals.PackageTotal,
			AddOnsTotal:        totals.AddOnsTotal,
			Total:              totals.Total,
			TotalAfterDiscount: totals.TotalAfterDiscount,
		},
	}

	if d.HasCoupon() {
		req.CouponCode = d.CouponCode
	}
	for _, a := range d.AddOns {
		if a.Quantity <= 0 {
			continue
		}
		req.AddOns = append(req.AddOns, studioapi.AddOnItem{ID: a.ID, Quantity: a.Quantity, Price: a.Price})
	}

	return req
}

// toReceipt снимок бронирования, который видел клиент
func toReceipt(d *domain.BookingDraft, created *studioapi.CreatedBooking, totals domain.Totals, now time.Time) *domain.Receipt {
	rec := &domain.Receipt{
		BookingRef:          created.ID,
		Status:              receiptStatus(created.Status),
		StudioID:            d.Studio.ID,
		StudioName:          d.Studio.Name,
		BookingDate:         d.Date,
		StartTime:           d.StartSlot,
		EndTime:             d.EndSlot,
		DurationHours:       d.Duration,
		PackageID:           d.Package.ID,
		PackageName:         d.Package.Name,
		PackagePricePerHour: d.Package.PricePerHour,
		DiscountPercent:     d.DiscountPercent(),
		Totals:              totals,
		FirstName:           d.PersonalInfo.FirstName,
		LastName:            d.PersonalInfo.LastName,
		Email:               d.PersonalInfo.Email,
		Phone:               d.PersonalInfo.Phone,
		PaymentMethod:       d.PaymentMethod,
		CreatedAt:           now,
	}

	for _, a := range d.AddOns {
		if a.Quantity > 0 {
			rec.AddOns = append(rec.AddOns, a)
		}
	}
	if d.HasCoupon() {
		code := d.CouponCode
		rec.CouponCode = &code
	}
	if d.PersonalInfo.Brand != "" {
		brand := d.PersonalInfo.Brand
		rec.Brand = &brand
	}

	return rec
}

func receiptStatus(status string) domain.ReceiptStatus {
	if domain.ReceiptStatus(strings.ToLower(status)) == domain.ReceiptConfirmed {
		return domain.ReceiptConfirmed
	}
	return domain.ReceiptPending
}
