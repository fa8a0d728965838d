package validator

import (
	"tourism/pkg/logger"
	"tourism/pkg/model"
	"tourism/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ListingValidator struct {
	validate *validator.Validate
}

func NewListingValidator(log *logger.Logger) *ListingValidator {
	return &ListingValidator{
		validate: validation.New(log),
	}
}

func (v *ListingValidator) ValidateGuide(g *model.Guide) error {
	return validation.Struct(v.validate, g)
}

func (v *ListingValidator) ValidateBusiness(b *model.Business) error {
	return validation.Struct(v.validate, b)
}
