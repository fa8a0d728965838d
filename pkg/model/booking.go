package model

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

const (
	PaymentUnpaid        = "unpaid"
	PaymentPartiallyPaid = "partially_paid"
	PaymentPaid          = "paid"
)

const (
	ActionConfirm  = "confirm"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

type Booking struct {
	ID                 string     `json:"id,omitempty" bson:"_id,omitempty"`
	TargetType         TargetType `json:"target_type" bson:"target_type"`
	TargetID           string     `json:"target_id" bson:"target_id"`
	OwnerID            string     `json:"owner_id" bson:"owner_id"`
	CustomerID         string     `json:"customer_id" bson:"customer_id"`
	SlotID             string     `json:"slot_id,omitempty" bson:"slot_id,omitempty"`
	Date               string     `json:"date" bson:"date"`
	StartTime          string     `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime            string     `json:"end_time,omitempty" bson:"end_time,omitempty"`
	PartySize          int        `json:"party_size" bson:"party_size"`
	Notes              string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Status             string     `json:"status" bson:"status"`
	PaymentStatus      string     `json:"payment_status" bson:"payment_status"`
	CancellationReason string     `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" bson:"updated_at"`
}

type BookingRequest struct {
	TargetType TargetType `json:"target_type" validate:"required,oneof=guide business"`
	TargetID   string     `json:"target_id" validate:"required,mongodb"`
	SlotID     string     `json:"slot_id,omitempty" validate:"omitempty,mongodb"`
	Date       string     `json:"date" validate:"omitempty,date"`
	StartTime  string     `json:"start_time,omitempty" validate:"omitempty,hhmm"`
	EndTime    string     `json:"end_time,omitempty" validate:"omitempty,hhmm"`
	PartySize  int        `json:"party_size" validate:"omitempty,min=1,max=100"`
	Notes      string     `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type TransitionRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// StatusChange is what a successful transition writes.
type StatusChange struct {
	From       string
	To         string
	Reason     string
	OccurredAt time.Time
}

type BulkRequest struct {
	Action     string   `json:"action" validate:"required,oneof=confirm complete cancel"`
	BookingIDs []string `json:"booking_ids" validate:"required,min=1,dive,mongodb"`
	Reason     string   `json:"reason,omitempty" validate:"omitempty,max=500"`
}

const (
	OutcomeSuccess = "success"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

type BulkItemResult struct {
	BookingID string `json:"booking_id"`
	Outcome   string `json:"outcome"`
	Reason    string `json:"reason,omitempty"`
}

type BulkResult struct {
	Action       string           `json:"action"`
	SuccessCount int              `json:"success_count"`
	SkippedCount int              `json:"skipped_count"`
	FailedCount  int              `json:"failed_count"`
	Items        []BulkItemResult `json:"items"`
}

type PaymentUpdate struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=unpaid partially_paid paid"`
}

type BookingFilter struct {
	CustomerID string
	OwnerID    string
	Status     string
	TargetType TargetType
	TargetID   string
}
