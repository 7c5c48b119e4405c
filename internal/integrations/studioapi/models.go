package studioapi

// AvailableSlotsRequest запрос стартовых слотов
type AvailableSlotsRequest struct {
	StudioID string `json:"studioId"`
	Date     string `json:"date"` // YYYY-MM-DD
	Duration int    `json:"duration"`
}

// StartSlot стартовый слот из ответа бэкенда
type StartSlot struct {
	StartTime string `json:"startTime"`
}

// EndSlotsRequest запрос слотов окончания
type EndSlotsRequest struct {
	StartTime string `json:"startTime"`
	StudioID  string `json:"studioId"`
	Date      string `json:"date"`
	PackageID string `json:"package_id"`
}

// EndSlot слот окончания со стоимостью
type EndSlot struct {
	EndTime    string  `json:"endTime"`
	TotalPrice float64 `json:"totalPrice"`
}

// ApplyCouponRequest запрос на проверку купона
type ApplyCouponRequest struct {
	Email    string `json:"email"`
	CouponID string `json:"coupon_id"`
}

// CouponResult подтвержденная скидка
type CouponResult struct {
	Discount float64 `json:"discount"`
}

// CreateBookingRequest полный черновик для создания бронирования
type CreateBookingRequest struct {
	PersonalInfo  PersonalInfo `json:"personalInfo"`
	StudioID      string       `json:"studio"`
	Date          string       `json:"date"`
	StartSlot     string       `json:"startSlot"`
	EndSlot       string       `json:"endSlot"`
	Duration      int          `json:"duration"`
	PackageID     string       `json:"package"`
	AddOns        []AddOnItem  `json:"extras"`
	CouponCode    string       `json:"couponCode,omitempty"`
	PaymentMethod string       `json:"paymentMethod"`
	Totals        ClientTotals `json:"totals"`
}

// PersonalInfo контактные данные клиента
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Brand     string `json:"brand,omitempty"`
}

// AddOnItem выбранная дополнительная услуга
type AddOnItem struct {
	ID       string  `json:"item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ClientTotals суммы, посчитанные на стороне клиента (бэкенд пересчитывает их сам)
type ClientTotals struct {
	PackageTotal       float64 `json:"totalPackagePrice"`
	AddOnsTotal        float64 `json:"totalAddOnsPrice"`
	Total              float64 `json:"totalPrice"`
	TotalAfterDiscount float64 `json:"totalPriceAfterDiscount"`
}

// CreatedBooking созданное бронирование
type CreatedBooking struct {
	ID         string  `json:"_id"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
}

// ErrorResponse модель ошибки от бэкенда
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
