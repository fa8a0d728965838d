package http

import (
	"encoding/json"
	"net/http"

	apperrors "tourism/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Code    string                 `json:"code,omitempty"`
	Data    any                    `json:"data,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
	Details map[string]any         `json:"details,omitempty"`
	Meta    *Meta                  `json:"meta,omitempty"`
}

type Meta struct {
	TotalCount int64 `json:"total_count"`
	Limit      int   `json:"limit"`
	Offset     int64 `json:"offset"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)

	env := Envelope{
		Status:  StatusError,
		Message: appErr.Message,
		Code:    appErr.Code,
		Errors:  appErr.Fields,
		Details: appErr.Details,
	}
	if appErr.Code == apperrors.CodeInternal {
		env.Message = "Internal server error"
		env.Details = nil
	}

	WriteJSON(w, appErr.StatusCode(), env)
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Data: data})
}

func WriteMessage(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Status: StatusSuccess, Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WritePaginated(w http.ResponseWriter, data any, totalCount int64, limit int, offset int64) {
	WriteJSON(w, http.StatusOK, Envelope{
		Status: StatusSuccess,
		Data:   data,
		Meta: &Meta{
			TotalCount: totalCount,
			Limit:      limit,
			Offset:     offset,
		},
	})
}
