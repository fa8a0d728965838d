package validator

import (
	"tourism/pkg/logger"
	"tourism/pkg/model"
	"tourism/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ReviewValidator struct {
	validate *validator.Validate
}

func NewReviewValidator(log *logger.Logger) *ReviewValidator {
	return &ReviewValidator{
		validate: validation.New(log),
	}
}

func (v *ReviewValidator) ValidateRequest(req *model.ReviewRequest) error {
	return validation.Struct(v.validate, req)
}

func (v *ReviewValidator) ValidateUpdate(update *model.ReviewUpdate) error {
	return validation.Struct(v.validate, update)
}

func (v *ReviewValidator) ValidateModeration(update *model.ModerationUpdate) error {
	return validation.Struct(v.validate, update)
}
