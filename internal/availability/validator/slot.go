package validator

import (
	"errors"

	"tourism/pkg/logger"
	"tourism/pkg/model"
	"tourism/pkg/timeslot"
	"tourism/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type SlotValidator struct {
	validate *validator.Validate
}

func NewSlotValidator(log *logger.Logger) *SlotValidator {
	return &SlotValidator{
		validate: validation.New(log),
	}
}

func (v *SlotValidator) ValidateRequest(req *model.SlotRequest) error {
	if err := validation.Struct(v.validate, req); err != nil {
		return err
	}
	if req.RepeatWeekly && req.RepeatUntil == "" {
		return validation.ValidationError{Field: "repeat_until", Message: "repeat_until is required when repeat_weekly is set"}
	}
	if verr, ok := checkRange(req.StartTime, req.EndTime, "end_time"); !ok {
		return verr
	}
	return nil
}

func (v *SlotValidator) ValidateUpdate(u *model.SlotUpdate) error {
	return validation.Struct(v.validate, u)
}

func (v *SlotValidator) ValidateRecurrence(req *model.RecurrenceRequest) error {
	if err := validation.Struct(v.validate, req); err != nil {
		return err
	}
	var errs validation.ValidationErrors
	for _, tmpl := range req.TimeSlots {
		if verr, ok := checkRange(tmpl.StartTime, tmpl.EndTime, "time_slots.end_time"); !ok {
			errs = append(errs, verr)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateSlot checks the merged state of a slot before it is written.
func (v *SlotValidator) ValidateSlot(slot *model.Slot) error {
	if verr, ok := checkRange(slot.StartTime, slot.EndTime, "end_time"); !ok {
		return verr
	}
	return nil
}

func checkRange(start, end, field string) (validation.ValidationError, bool) {
	if _, err := timeslot.NewInterval(start, end); err != nil {
		message := err.Error()
		if errors.Is(err, timeslot.ErrEmptyRange) {
			message = "end_time must be after start_time"
		}
		return validation.ValidationError{Field: field, Message: message}, false
	}
	return validation.ValidationError{}, true
}
