package service

import (
	"tourism/pkg/model"
	"tourism/pkg/timeslot"
)

// findConflict returns the first slot in existing whose [start, end) range
// overlaps candidate. The slot with excludeID is ignored so an update does
// not collide with itself.
func findConflict(existing []*model.Slot, candidate timeslot.Interval, excludeID string) *model.Slot {
	for _, slot := range existing {
		if excludeID != "" && slot.ID == excludeID {
			continue
		}
		interval, err := timeslot.NewInterval(slot.StartTime, slot.EndTime)
		if err != nil {
			continue
		}
		if interval.Overlaps(candidate) {
			return slot
		}
	}
	return nil
}
