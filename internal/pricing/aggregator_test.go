package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

func ptrFloat(v float64) *float64 {
	return &v
}

func TestRecompute(t *testing.T) {
	tests := []struct {
		name  string
		draft *domain.BookingDraft
		want  domain.Totals
	}{
		{
			name:  "empty draft",
			draft: &domain.BookingDraft{},
			want:  domain.Totals{},
		},
		{
			name:  "package only",
			draft: &domain.BookingDraft{PackagePrice: 1500},
			want:  domain.Totals{PackageTotal: 1500, Total: 1500, TotalAfterDiscount: 1500},
		},
		{
			name: "package and add-ons",
			draft: &domain.BookingDraft{
				PackagePrice: 1000,
				AddOns: []domain.SelectedAddOn{
					{ID: "mic", Price: 50, Quantity: 2},
					{ID: "cam", Price: 200, Quantity: 1},
				},
			},
			want: domain.Totals{PackageTotal: 1000, AddOnsTotal: 300, Total: 1300, TotalAfterDiscount: 1300},
		},
		{
			name: "zero quantity add-on ignored",
			draft: &domain.BookingDraft{
				AddOns: []domain.SelectedAddOn{{ID: "mic", Price: 50, Quantity: 0}},
			},
			want: domain.Totals{},
		},
		{
			name:  "scenario with 20 percent coupon",
			draft: &domain.BookingDraft{PackagePrice: 1500, Discount: ptrFloat(20)},
			want: domain.Totals{
				PackageTotal: 1500, Total: 1500, DiscountAmount: 300, TotalAfterDiscount: 1200,
			},
		},
		{
			name:  "discount above 100 is clamped",
			draft: &domain.BookingDraft{PackagePrice: 100, Discount: ptrFloat(150)},
			want:  domain.Totals{PackageTotal: 100, Total: 100, DiscountAmount: 100, TotalAfterDiscount: 0},
		},
		{
			name:  "invalid package price treated as zero",
			draft: &domain.BookingDraft{PackagePrice: math.NaN()},
			want:  domain.Totals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recompute(tt.draft))
		})
	}
}

func TestRecompute_Invariants(t *testing.T) {
	for _, pkg := range []float64{0, 1, 99.5, 1500, 12345.75} {
		for _, addOn := range []float64{0, 10, 250.25} {
			for _, discount := range []float64{0, 5, 20, 33.3, 50, 100} {
				d := &domain.BookingDraft{
					PackagePrice: pkg,
					AddOns:       []domain.SelectedAddOn{{ID: "x", Price: addOn, Quantity: 1}},
					Discount:     ptrFloat(discount),
				}

				first := Recompute(d)
				second := Recompute(d)

				assert.Equal(t, first, second)
				assert.Equal(t, first.PackageTotal+first.AddOnsTotal, first.Total)
				assert.InDelta(t, first.Total*(1-discount/100), first.TotalAfterDiscount, 1e-9)
				assert.LessOrEqual(t, first.TotalAfterDiscount, first.Total)
			}
		}
	}
}

func TestRecompute_NoCouponKeepsTotal(t *testing.T) {
	d := &domain.BookingDraft{PackagePrice: 800}
	totals := Recompute(d)
	assert.Equal(t, totals.Total, totals.TotalAfterDiscount)
	assert.Zero(t, totals.DiscountAmount)
}
