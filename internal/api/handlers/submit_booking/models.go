package submit_booking

import (
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/receipts/models"
	submitBooking "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/usecase/submit_booking"
)

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	BookingRef   string                  `json:"bookingRef"`
	Receipt      *models.ReceiptResponse `json:"receipt"`
	ReceiptSaved bool                    `json:"receiptSaved"` // false: квитанцию не удалось сохранить, бронирование создано
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		BookingRef:   resp.BookingRef,
		Receipt:      models.FromDomainReceipt(resp.Receipt),
		ReceiptSaved: resp.ReceiptSaved,
	}
}
