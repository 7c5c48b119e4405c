package selection

import (
	"fmt"
	"net/mail"
	"regexp"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

// NextStep переходит на следующий шаг.
// На последнем шаге ничего не делает; если текущий шаг не заполнен, возвращает ErrStepInvalid.
func NextStep(d *domain.BookingDraft) error {
	current := d.Step.Clamp()
	if current >= domain.LastStep {
		d.Step = current
		return nil
	}
	if err := Validate(d, current); err != nil {
		return err
	}
	d.Step = current + 1
	return nil
}

// PrevStep возвращается на предыдущий шаг; на первом шаге ничего не делает
func PrevStep(d *domain.BookingDraft) {
	current := d.Step.Clamp()
	if current <= domain.FirstStep {
		d.Step = current
		return
	}
	d.Step = current - 1
}

// ValidateAll проверяет все шаги мастера (перед отправкой)
func ValidateAll(d *domain.BookingDraft) error {
	for _, step := range domain.Steps {
		if err := Validate(d, step); err != nil {
			return err
		}
	}
	return nil
}

// Validate проверяет поля, относящиеся к шагу
func Validate(d *domain.BookingDraft, step domain.Step) error {
	var problems []string

	switch step {
	case domain.StepSelectStudio:
		if d.Studio == nil {
			problems = append(problems, "studio is required")
		}

	case domain.StepSelectDateTime:
		problems = validateDateTime(d)

	case domain.StepSelectAdditionalServices:
		for _, a := range d.AddOns {
			if a.Quantity <= 0 {
				problems = append(problems, fmt.Sprintf("add-on %s has no quantity", a.ID))
			}
			if !validAmount(a.Price) {
				problems = append(problems, fmt.Sprintf("add-on %s has an invalid price", a.ID))
			}
		}
		if len(d.AddOns) > domain.MaxAddOnsPerBooking {
			problems = append(problems, fmt.Sprintf("at most %d add-ons allowed", domain.MaxAddOnsPerBooking))
		}

	case domain.StepPersonalInformation:
		problems = validatePersonalInfo(d)

	default:
		return fmt.Errorf("%w: unknown step %d", ErrStepInvalid, step)
	}

	if len(problems) > 0 {
		return &StepError{Step: step, Problems: problems}
	}
	return nil
}

// StepError перечисляет незаполненные поля шага
type StepError struct {
	Step     domain.Step
	Problems []string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrStepInvalid, e.Step, e.Problems)
}

func (e *StepError) Unwrap() error {
	return ErrStepInvalid
}

func validateDateTime(d *domain.BookingDraft) []string {
	var problems []string

	if !d.HasDate() {
		problems = append(problems, "date is required")
	}
	if d.Package == nil {
		problems = append(problems, "package is required")
	}
	if d.StartSlot.IsZero() {
		problems = append(problems, "start slot is required")
	}
	if d.EndSlot.IsZero() {
		problems = append(problems, "end slot is required")
	}
	if d.Duration < domain.MinDurationHours {
		problems = append(problems, "duration must be positive")
	}

	if !d.StartSlot.IsZero() && !d.EndSlot.IsZero() {
		start, errStart := d.StartSlot.Minutes()
		end, errEnd := d.EndSlot.Minutes()
		switch {
		case errStart != nil || errEnd != nil:
			problems = append(problems, "slot times are malformed")
		case end-start != d.Duration*60:
			problems = append(problems, fmt.Sprintf("duration %dh does not match %s-%s", d.Duration, d.StartSlot, d.EndSlot))
		}
	}

	return problems
}

func validatePersonalInfo(d *domain.BookingDraft) []string {
	var problems []string
	info := d.PersonalInfo

	if info.FirstName == "" {
		problems = append(problems, "first name is required")
	}
	if info.LastName == "" {
		problems = append(problems, "last name is required")
	}
	if info.Email == "" {
		problems = append(problems, "email is required")
	} else if addr, err := mail.ParseAddress(info.Email); err != nil || addr.Address != info.Email {
		problems = append(problems, "email is invalid")
	}
	if info.Phone == "" {
		problems = append(problems, "phone is required")
	} else if !phonePattern.MatchString(info.Phone) {
		problems = append(problems, "phone is invalid")
	}
	if !d.PaymentMethod.IsValid() {
		problems = append(problems, "payment method is required")
	}

	return problems
}
