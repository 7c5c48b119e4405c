package select_end_slot

// SelectEndSlotRequest HTTP request model
type SelectEndSlotRequest struct {
	EndTime string `json:"endTime"` // "13:00", один из полученных end-slots
}
