package apply_coupon

import (
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
	applyCoupon "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/usecase/apply_coupon"
)

// ApplyCouponRequest HTTP request model
type ApplyCouponRequest struct {
	CouponCode string `json:"couponCode"`
}

// ApplyCouponResponse HTTP response model
type ApplyCouponResponse struct {
	Discount float64               `json:"discount"` // процент скидки
	Draft    *models.DraftResponse `json:"draft"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyCouponRequest) ToUseCaseRequest(draftID string) *applyCoupon.Request {
	return &applyCoupon.Request{
		DraftID:    draftID,
		CouponCode: r.CouponCode,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyCoupon.Response) *ApplyCouponResponse {
	return &ApplyCouponResponse{
		Discount: resp.Discount,
		Draft:    models.FromDomainDraft(resp.Draft),
	}
}
