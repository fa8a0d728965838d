package validation

import (
	"errors"
	"testing"

	apperrors "tourism/pkg/errors"
	"tourism/pkg/logger"
)

type sample struct {
	Date    string   `json:"date" validate:"required,date"`
	Start   string   `json:"start_time" validate:"required,hhmm"`
	Days    []string `json:"weekdays" validate:"omitempty,dive,weekday"`
	Rating  int      `json:"rating" validate:"omitempty,min=1,max=5"`
	Ignored string   `json:"-"`
}

func TestStruct_CustomTags(t *testing.T) {
	log := logger.New(logger.Config{Level: "info", Format: logger.JSON, Service: "test"})
	v := New(log)

	tests := []struct {
		name      string
		in        sample
		wantField string
	}{
		{"valid", sample{Date: "2025-07-01", Start: "10:00", Days: []string{"monday"}}, ""},
		{"bad date", sample{Date: "2025-13-01", Start: "10:00"}, "date"},
		{"bad clock", sample{Date: "2025-07-01", Start: "25:00"}, "start_time"},
		{"bad weekday", sample{Date: "2025-07-01", Start: "10:00", Days: []string{"someday"}}, "weekdays[0]"},
		{"rating out of range", sample{Date: "2025-07-01", Start: "10:00", Rating: 6}, "rating"},
		{"missing date", sample{Start: "10:00"}, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(v, &tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verrs[0].Field)
			}
		})
	}
}

func TestToAppError_CarriesFields(t *testing.T) {
	err := ValidationErrors{{Field: "end_time", Message: "end_time must be after start_time"}}

	appErr := ToAppError("Slot validation failed", err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	if len(appErr.Fields) != 1 || appErr.Fields[0].Field != "end_time" {
		t.Errorf("expected end_time field error, got %#v", appErr.Fields)
	}
}

func TestToAppError_SingleError(t *testing.T) {
	appErr := ToAppError("bad", ValidationError{Field: "date", Message: "date cannot be in the past"})
	if len(appErr.Fields) != 1 || appErr.Fields[0].Message != "date cannot be in the past" {
		t.Errorf("unexpected fields %#v", appErr.Fields)
	}
}
