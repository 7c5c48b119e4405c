package models

import (
	"time"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

// Response модели

// AddOnResponse дополнительная услуга в квитанции
type AddOnResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// TotalsResponse суммы бронирования
type TotalsResponse struct {
	PackageTotal       float64 `json:"totalPackagePrice"`
	AddOnsTotal        float64 `json:"totalAddOnsPrice"`
	Total              float64 `json:"totalPrice"`
	DiscountAmount     float64 `json:"discountAmount"`
	TotalAfterDiscount float64 `json:"totalPriceAfterDiscount"`
}

// ReceiptResponse ответ с данными квитанции
type ReceiptResponse struct {
	ID         int64  `json:"id"`
	BookingRef string `json:"bookingRef"`
	Status     string `json:"status"`

	StudioID      string `json:"studioId"`
	StudioName    string `json:"studioName"`
	BookingDate   string `json:"bookingDate"` // "2025-10-15"
	StartTime     string `json:"startTime"`   // "10:00"
	EndTime       string `json:"endTime"`     // "13:00"
	DurationHours int    `json:"durationHours"`

	PackageID           string          `json:"packageId"`
	PackageName         string          `json:"packageName"`
	PackagePricePerHour float64         `json:"packagePricePerHour"`
	AddOns              []AddOnResponse `json:"addOns"`

	CouponCode      *string        `json:"couponCode,omitempty"`
	DiscountPercent float64        `json:"discountPercent"`
	Totals          TotalsResponse `json:"totals"`

	CustomerName  string  `json:"customerName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Brand         *string `json:"brand,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`

	CreatedAt time.Time `json:"createdAt"`
}

// ReceiptListResponse ответ со списком квитанций
type ReceiptListResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
}

// Методы конвертации

// FromDomainReceipt конвертирует domain модель в DTO
func FromDomainReceipt(r *domain.Receipt) *ReceiptResponse {
	if r == nil {
		return nil
	}

	resp := &ReceiptResponse{
		ID:                  r.ID,
		BookingRef:          r.BookingRef,
		Status:              string(r.Status),
		StudioID:            r.StudioID,
		StudioName:          r.StudioName,
		BookingDate:         r.BookingDate.Format(domain.DateFormat),
		StartTime:           r.StartTime.String(),
		EndTime:             r.EndTime.String(),
		DurationHours:       r.DurationHours,
		PackageID:           r.PackageID,
		PackageName:         r.PackageName,
		PackagePricePerHour: r.PackagePricePerHour,
		AddOns:              make([]AddOnResponse, 0, len(r.AddOns)),
		CouponCode:          r.CouponCode,
		DiscountPercent:     r.DiscountPercent,
		Totals: TotalsResponse{
			PackageTotal:       r.Totals.PackageTotal,
			AddOnsTotal:        r.Totals.AddOnsTotal,
			Total:              r.Totals.Total,
			DiscountAmount:     r.Totals.DiscountAmount,
			TotalAfterDiscount: r.Totals.TotalAfterDiscount,
		},
		CustomerName:  r.CustomerName(),
		Email:         r.Email,
		Phone:         r.Phone,
		Brand:         r.Brand,
		PaymentMethod: string(r.PaymentMethod),
		CreatedAt:     r.CreatedAt,
	}

	for _, a := range r.AddOns {
		resp.AddOns = append(resp.AddOns, AddOnResponse{
			ID:       a.ID,
			Name:     a.Name,
			Price:    a.Price,
			Quantity: a.Quantity,
			Total:    a.Total(),
		})
	}

	return resp
}

// FromDomainReceiptList конвертирует список domain моделей в DTO
func FromDomainReceiptList(receipts []*domain.Receipt) *ReceiptListResponse {
	resp := &ReceiptListResponse{
		Receipts: make([]ReceiptResponse, 0, len(receipts)),
	}

	for _, r := range receipts {
		if receiptResp := FromDomainReceipt(r); receiptResp != nil {
			resp.Receipts = append(resp.Receipts, *receiptResp)
		}
	}

	return resp
}
