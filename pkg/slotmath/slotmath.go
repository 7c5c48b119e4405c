// Package slotmath contains the time and price arithmetic of a booking slot.
//
// Both functions are total: invalid input yields a safe default instead of an error.
package slotmath

import (
	"math"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/types"
)

const hoursPerDay = 24

// ComputeEndTime returns startTime ("HH:MM") moved forward by durationHours whole hours.
// Minutes are preserved. ok is false when startTime does not parse, durationHours is negative,
// or the end would reach midnight: a slot never spans two dates.
func ComputeEndTime(startTime string, durationHours int) (string, bool) {
	if durationHours < 0 || durationHours > hoursPerDay {
		return "", false
	}

	start, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return "", false
	}

	end, err := start.AddHours(durationHours)
	if err != nil {
		return "", false
	}

	return end.String(), true
}

// ComputeTotalPrice returns durationHours * pricePerHour, or 0 if either value
// is negative or not a finite number.
func ComputeTotalPrice(durationHours int, pricePerHour float64) float64 {
	if durationHours < 0 || !isValidAmount(pricePerHour) {
		return 0
	}
	return float64(durationHours) * pricePerHour
}

func isValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
