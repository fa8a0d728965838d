package validator

import (
	"tourism/pkg/logger"
	"tourism/pkg/model"
	"tourism/pkg/timeslot"
	"tourism/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validation.New(log),
	}
}

// ValidateRequest checks a booking request. Without a slot the date is
// required, and a given time range must be non-empty.
func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	if err := validation.Struct(v.validate, req); err != nil {
		return err
	}

	var errs validation.ValidationErrors
	if req.SlotID == "" {
		if req.Date == "" {
			errs = append(errs, validation.ValidationError{Field: "date", Message: "date is required when no slot_id is given"})
		}
		if req.StartTime != "" && req.EndTime != "" {
			if _, err := timeslot.NewInterval(req.StartTime, req.EndTime); err != nil {
				errs = append(errs, validation.ValidationError{Field: "end_time", Message: "end_time must be after start_time"})
			}
		}
	} else if req.TargetType != model.TargetGuide {
		errs = append(errs, validation.ValidationError{Field: "slot_id", Message: "slot_id is only allowed for guide bookings"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *BookingValidator) ValidateTransition(req *model.TransitionRequest) error {
	return validation.Struct(v.validate, req)
}

func (v *BookingValidator) ValidateBulk(req *model.BulkRequest) error {
	return validation.Struct(v.validate, req)
}

func (v *BookingValidator) ValidatePayment(req *model.PaymentUpdate) error {
	return validation.Struct(v.validate, req)
}
