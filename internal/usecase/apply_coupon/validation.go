package apply_coupon

import (
	"fmt"
	"strings"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.DraftID) == "" {
		return fmt.Errorf("%w: draftID is required", ErrInvalidInput)
	}

	req.CouponCode = strings.TrimSpace(req.CouponCode)
	if req.CouponCode == "" {
		return fmt.Errorf("%w: coupon code is required", ErrInvalidInput)
	}

	if len(req.CouponCode) > domain.MaxCouponCodeLength {
		return fmt.Errorf("%w: coupon code is longer than %d characters", ErrInvalidInput, domain.MaxCouponCodeLength)
	}

	return nil
}
