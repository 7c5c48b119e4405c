package domain

import "time"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Draft defaults
const (
	DefaultDraftTTL = 2 * time.Hour
	MinDraftTTL     = 5 * time.Minute
)

// Business validation constants
const (
	MinDurationHours    = 1
	MaxDurationHours    = 24
	MaxAddOnQuantity    = 100
	MaxAddOnsPerBooking = 50
	MinDiscountPercent  = 0
	MaxDiscountPercent  = 100
	MaxNameLength       = 100
	MaxBrandLength      = 200
	MaxCouponCodeLength = 64
)
