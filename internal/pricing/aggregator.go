// Package pricing derives the totals of a booking draft.
//
// Totals are never stored: callers run Recompute after every change to the draft.
package pricing

import (
	"math"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

// Recompute returns the derived totals of the draft.
func Recompute(d *domain.BookingDraft) domain.Totals {
	packageTotal := sanitize(d.PackagePrice)
	addOnsTotal := AddOnsTotal(d.AddOns)
	total := packageTotal + addOnsTotal

	discountAmount := 0.0
	if d.HasCoupon() {
		discountAmount = DiscountAmount(total, *d.Discount)
	}

	return domain.Totals{
		PackageTotal:       packageTotal,
		AddOnsTotal:        addOnsTotal,
		Total:              total,
		DiscountAmount:     discountAmount,
		TotalAfterDiscount: total - discountAmount,
	}
}

// AddOnsTotal sums price * quantity over add-ons with a positive quantity.
func AddOnsTotal(addOns []domain.SelectedAddOn) float64 {
	sum := 0.0
	for _, a := range addOns {
		if a.Quantity <= 0 {
			continue
		}
		sum += sanitize(a.Total())
	}
	return sum
}

// DiscountAmount applies a percentage to total; percent is clamped to [0, 100].
func DiscountAmount(total, percent float64) float64 {
	return total * ClampDiscount(percent) / 100
}

// ClampDiscount bounds a discount percentage to [0, 100].
func ClampDiscount(percent float64) float64 {
	switch {
	case math.IsNaN(percent), percent < domain.MinDiscountPercent:
		return domain.MinDiscountPercent
	case percent > domain.MaxDiscountPercent:
		return domain.MaxDiscountPercent
	default:
		return percent
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
