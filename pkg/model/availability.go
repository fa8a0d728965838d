package model

import "time"

const (
	SlotAvailable   = "available"
	SlotUnavailable = "unavailable"
	SlotBooked      = "booked"
)

type Slot struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	GuideID   string    `json:"guide_id" bson:"guide_id"`
	Date      string    `json:"date" bson:"date"`
	StartTime string    `json:"start_time" bson:"start_time"`
	EndTime   string    `json:"end_time" bson:"end_time"`
	Status    string    `json:"status" bson:"status"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	BookingID string    `json:"booking_id,omitempty" bson:"booking_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type SlotRequest struct {
	Date         string `json:"date" validate:"required,date"`
	StartTime    string `json:"start_time" validate:"required,hhmm"`
	EndTime      string `json:"end_time" validate:"required,hhmm"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=available unavailable booked"`
	Notes        string `json:"notes,omitempty" validate:"omitempty,max=500"`
	RepeatWeekly bool   `json:"repeat_weekly,omitempty"`
	RepeatUntil  string `json:"repeat_until,omitempty" validate:"omitempty,date"`
}

type SlotUpdate struct {
	Date      *string `json:"date,omitempty" validate:"omitempty,date"`
	StartTime *string `json:"start_time,omitempty" validate:"omitempty,hhmm"`
	EndTime   *string `json:"end_time,omitempty" validate:"omitempty,hhmm"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=available unavailable booked"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type TimeTemplate struct {
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
}

// RecurrenceRequest expands into one slot per selected weekday and template
// within [StartDate, EndDate].
type RecurrenceRequest struct {
	StartDate string         `json:"start_date" validate:"required,date"`
	EndDate   string         `json:"end_date" validate:"required,date"`
	Weekdays  []string       `json:"weekdays" validate:"required,min=1,max=7,dive,weekday"`
	TimeSlots []TimeTemplate `json:"time_slots" validate:"required,min=1,dive"`
	Status    string         `json:"status,omitempty" validate:"omitempty,oneof=available unavailable booked"`
	Notes     string         `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type SkippedSlot struct {
	Date              string `json:"date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Reason            string `json:"reason"`
	ConflictingSlotID string `json:"conflicting_slot_id,omitempty"`
}

type BatchResult struct {
	CreatedCount int           `json:"created_count"`
	SkippedCount int           `json:"skipped_count"`
	FailedCount  int           `json:"failed_count"`
	Created      []*Slot       `json:"created"`
	Skipped      []SkippedSlot `json:"skipped"`
	Failed       []SkippedSlot `json:"failed,omitempty"`
}

type SlotFilter struct {
	Date string
	From string
	To   string
}
