package domain

// Step шаг мастера бронирования
type Step int

const (
	StepSelectStudio Step = iota + 1
	StepSelectDateTime
	StepSelectAdditionalServices
	StepPersonalInformation
)

// Steps упорядоченный список шагов мастера.
// Подтверждение - результат отправки, а не шаг.
var Steps = [...]Step{
	StepSelectStudio,
	StepSelectDateTime,
	StepSelectAdditionalServices,
	StepPersonalInformation,
}

// TotalSteps количество шагов мастера
const TotalSteps = len(Steps)

// FirstStep и LastStep границы мастера
const (
	FirstStep = StepSelectStudio
	LastStep  = StepPersonalInformation
)

// IsValid returns true if the step belongs to the wizard
func (s Step) IsValid() bool {
	return s >= FirstStep && s <= LastStep
}

// Clamp приводит шаг к диапазону [FirstStep, LastStep]
func (s Step) Clamp() Step {
	if s < FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s
}

func (s Step) String() string {
	switch s {
	case StepSelectStudio:
		return "select_studio"
	case StepSelectDateTime:
		return "select_date_time"
	case StepSelectAdditionalServices:
		return "select_additional_services"
	case StepPersonalInformation:
		return "personal_information"
	default:
		return "unknown"
	}
}
