package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/pricing"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/selection"
)

var (
	// ErrUnknownMutation возвращается для неизвестного типа изменения
	ErrUnknownMutation = errors.New("unknown mutation type")

	// ErrInvalidMutationValue возвращается, когда значение не соответствует типу изменения
	ErrInvalidMutationValue = errors.New("invalid mutation value")
)

// Типы изменений черновика
const (
	MutationStudio         = "studio"
	MutationDate           = "date"
	MutationStartSlot      = "start_slot"
	MutationDuration       = "duration"
	MutationPackage        = "package"
	MutationAddOnSet       = "add_on.set"
	MutationAddOnIncrement = "add_on.increment"
	MutationAddOnDecrement = "add_on.decrement"
	MutationFirstName      = "personal_info.first_name"
	MutationLastName       = "personal_info.last_name"
	MutationEmail          = "personal_info.email"
	MutationPhone          = "personal_info.phone"
	MutationBrand          = "personal_info.brand"
	MutationPaymentMethod  = "payment_method"
	MutationClearCoupon    = "coupon.clear"
)

// Request модели

// StudioInput выбранная студия
type StudioInput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// PackageInput выбранный пакет
type PackageInput struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricePerHour float64 `json:"pricePerHour"`
	Duration     int     `json:"duration,omitempty"`
	Slot         string  `json:"slot,omitempty"`
}

// AddOnInput дополнительная услуга
type AddOnInput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CreateDraftRequest запрос на создание черновика.
// Studio и Step позволяют начать мастер со страницы студии.
type CreateDraftRequest struct {
	Studio *StudioInput `json:"studio,omitempty"`
	Step   *int         `json:"step,omitempty"`
}

// MutationRequest изменение одного поля черновика
type MutationRequest struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// ToMutation конвертирует запрос в изменение черновика
func (r MutationRequest) ToMutation() (selection.Mutation, error) {
	switch r.Type {
	case MutationStudio:
		var v StudioInput
		if err := r.decode(&v); err != nil {
			return nil, err
		}
		return selection.SetStudio{Studio: domain.StudioRef{ID: v.ID, Name: v.Name, Thumbnail: v.Thumbnail}}, nil

	case MutationDate:
		var v string
		if err := r.decode(&v); err != nil {
			return nil, err
		}
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: date must be YYYY-MM-DD", ErrInvalidMutationValue, r.Type)
		}
		return selection.SetDate{Date: date}, nil

	case MutationStartSlot:
		var v string
		if err := r.decode(&v); err != nil {
			return nil, err
		}
		return selection.SetStartSlot{StartTime: v}, nil

	case MutationDuration:
		var v int
		if err := r.decode(&v); err != nil {
			return nil, err
		}
		return selection.SetDuration{Hours: v}, nil

	case MutationPackage:
		var v PackageInput
		if err := r.decode(&v); err != nil {
			return nil, err
		}
		return selection.SetPackage{Package: domain.PackageRef{
			ID:           v.ID,
			Name:         v.Name,
			PricePerHour: v.PricePerHour,
			Duration:     v.Duration,
			Slot:         v.Slot,
		}}, nil

	case MutationAddOnSet, MutationAddOnIncrement:
		var v AddOnInput
		if err := r.decode(&v); err != nil {
			return nil, err
		}
		addOn := domain.SelectedAddOn{ID: v.ID, Name: v.Name, Price: v.Price, Quantity: v.Quantity}
		if r.Type == MutationAddOnIncrement {
			return selection.IncrementAddOn{AddOn: addOn}, nil
		}
		return selection.SetAddOnQuantity{AddOn: addOn}, nil

	case MutationAddOnDecrement:
		var v AddOnInput
		if err := r.decode(&v); err != nil {
			return nil, err
		}
		return selection.DecrementAddOn{AddOnID: v.ID}, nil

	case MutationFirstName, MutationLastName, MutationEmail, MutationPhone, MutationBrand, MutationPaymentMethod:
		var v string
		if err := r.decode(&v); err != nil {
			return nil, err
		}
		return textMutation(r.Type, v), nil

	case MutationClearCoupon:
		return selection.ClearCoupon{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMutation, r.Type)
}

func (r MutationRequest) decode(out interface{}) error {
	if len(r.Value) == 0 {
		return fmt.Errorf("%w: %s: value is required", ErrInvalidMutationValue, r.Type)
	}
	if err := json.Unmarshal(r.Value, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidMutationValue, r.Type, err)
	}
	return nil
}

func textMutation(kind, v string) selection.Mutation {
	switch kind {
	case MutationFirstName:
		return selection.SetPersonalInfoFirstName{Value: v}
	case MutationLastName:
		return selection.SetPersonalInfoLastName{Value: v}
	case MutationEmail:
		return selection.SetPersonalInfoEmail{Value: v}
	case MutationPhone:
		return selection.SetPersonalInfoPhone{Value: v}
	case MutationBrand:
		return selection.SetPersonalInfoBrand{Value: v}
	default:
		return selection.SetPaymentMethod{Method: domain.PaymentMethod(v)}
	}
}

// ToMutations конвертирует список запросов, сохраняя порядок
func ToMutations(reqs []MutationRequest) ([]selection.Mutation, error) {
	muts := make([]selection.Mutation, 0, len(reqs))
	for i, r := range reqs {
		m, err := r.ToMutation()
		if err != nil {
			return nil, fmt.Errorf("mutations[%d]: %w", i, err)
		}
		muts = append(muts, m)
	}
	return muts, nil
}

// Response модели

// StepResponse положение в мастере
type StepResponse struct {
	Current int    `json:"current"`
	Name    string `json:"name"`
	Total   int    `json:"total"`
}

// PackageResponse выбранный пакет
type PackageResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricePerHour float64 `json:"pricePerHour"`
	Duration     int     `json:"duration,omitempty"`
	Slot         string  `json:"slot,omitempty"`
}

// AddOnResponse выбранная дополнительная услуга
type AddOnResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// PersonalInfoResponse контактные данные
type PersonalInfoResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Brand     string `json:"brand,omitempty"`
}

// TotalsResponse производные суммы
type TotalsResponse struct {
	PackageTotal       float64 `json:"totalPackagePrice"`
	AddOnsTotal        float64 `json:"totalAddOnsPrice"`
	Total              float64 `json:"totalPrice"`
	DiscountAmount     float64 `json:"discountAmount"`
	TotalAfterDiscount float64 `json:"totalPriceAfterDiscount"`
}

// EndSlotResponse слот окончания
type EndSlotResponse struct {
	EndTime    string  `json:"endTime"`
	TotalPrice float64 `json:"totalPrice"`
}

// AvailabilityResponse полученные от бэкенда слоты
type AvailabilityResponse struct {
	StartSlots         []string          `json:"startSlots"`
	StartSlotsDegraded bool              `json:"startSlotsUnavailable,omitempty"`
	EndSlots           []EndSlotResponse `json:"endSlots"`
	EndSlotsDegraded   bool              `json:"endSlotsUnavailable,omitempty"`
}

// DraftResponse состояние черновика с пересчитанными суммами
type DraftResponse struct {
	ID            string               `json:"id"`
	Step          StepResponse         `json:"step"`
	Studio        *StudioInput         `json:"studio,omitempty"`
	Date          string               `json:"date,omitempty"`
	StartSlot     string               `json:"startSlot,omitempty"`
	EndSlot       string               `json:"endSlot,omitempty"`
	Duration      int                  `json:"duration"`
	Package       *PackageResponse     `json:"package,omitempty"`
	PackagePrice  float64              `json:"packagePrice"`
	AddOns        []AddOnResponse      `json:"addOns"`
	CouponCode    string               `json:"couponCode,omitempty"`
	Discount      *float64             `json:"discount,omitempty"`
	PersonalInfo  PersonalInfoResponse `json:"personalInfo"`
	PaymentMethod string               `json:"paymentMethod,omitempty"`
	Totals        TotalsResponse       `json:"totals"`
	Availability  AvailabilityResponse `json:"availability"`
	CouponPending bool                 `json:"couponPending,omitempty"`
	Submitting    bool                 `json:"submitting,omitempty"`
	ExpiresAt     time.Time            `json:"expiresAt"`
}

// Методы конвертации

// FromDomainDraft конвертирует черновик в DTO, суммы пересчитываются
func FromDomainDraft(d *domain.BookingDraft) *DraftResponse {
	if d == nil {
		return nil
	}

	step := d.Step.Clamp()
	resp := &DraftResponse{
		ID: d.ID,
		Step: StepResponse{
			Current: int(step),
			Name:    step.String(),
			Total:   domain.TotalSteps,
		},
		StartSlot:     d.StartSlot.String(),
		EndSlot:       d.EndSlot.String(),
		Duration:      d.Duration,
		PackagePrice:  d.PackagePrice,
		AddOns:        make([]AddOnResponse, 0, len(d.AddOns)),
		CouponCode:    d.CouponCode,
		Discount:      d.Discount,
		PaymentMethod: string(d.PaymentMethod),
		PersonalInfo: PersonalInfoResponse{
			FirstName: d.PersonalInfo.FirstName,
			LastName:  d.PersonalInfo.LastName,
			Email:     d.PersonalInfo.Email,
			Phone:     d.PersonalInfo.Phone,
			Brand:     d.PersonalInfo.Brand,
		},
		Totals:        FromDomainTotals(pricing.Recompute(d)),
		Availability:  fromDomainAvailability(d.Availability),
		CouponPending: d.CouponPending,
		Submitting:    d.Submitting,
		ExpiresAt:     d.ExpiresAt,
	}

	if d.Studio != nil {
		resp.Studio = &StudioInput{ID: d.Studio.ID, Name: d.Studio.Name, Thumbnail: d.Studio.Thumbnail}
	}
	if d.HasDate() {
		resp.Date = d.Date.Format(domain.DateFormat)
	}
	if d.Package != nil {
		resp.Package = &PackageResponse{
			ID:           d.Package.ID,
			Name:         d.Package.Name,
			PricePerHour: d.Package.PricePerHour,
			Duration:     d.Package.Duration,
			Slot:         d.Package.Slot,
		}
	}
	for _, a := range d.AddOns {
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

// FromDomainTotals конвертирует суммы в DTO
func FromDomainTotals(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		PackageTotal:       t.PackageTotal,
		AddOnsTotal:        t.AddOnsTotal,
		Total:              t.Total,
		DiscountAmount:     t.DiscountAmount,
		TotalAfterDiscount: t.TotalAfterDiscount,
	}
}

func fromDomainAvailability(a domain.Availability) AvailabilityResponse {
	resp := AvailabilityResponse{
		StartSlots:         make([]string, 0, len(a.StartSlots)),
		StartSlotsDegraded: a.StartSlotsDegraded,
		EndSlots:           make([]EndSlotResponse, 0, len(a.EndSlots)),
		EndSlotsDegraded:   a.EndSlotsDegraded,
	}
	for _, s := range a.StartSlots {
		resp.StartSlots = append(resp.StartSlots, s.StartTime.String())
	}
	for _, s := range a.EndSlots {
		resp.EndSlots = append(resp.EndSlots, EndSlotResponse{EndTime: s.EndTime.String(), TotalPrice: s.TotalPrice})
	}
	return resp
}
