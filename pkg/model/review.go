package model

import "time"

const (
	ReviewPublished = "published"
	ReviewHidden    = "hidden"
	ReviewFlagged   = "flagged"
	ReviewPending   = "pending"
)

type Review struct {
	ID              string     `json:"id,omitempty" bson:"_id,omitempty"`
	TargetType      TargetType `json:"target_type" bson:"target_type"`
	TargetID        string     `json:"target_id" bson:"target_id"`
	AuthorID        string     `json:"author_id" bson:"author_id"`
	Rating          int        `json:"rating" bson:"rating"`
	Title           string     `json:"title,omitempty" bson:"title,omitempty"`
	Comment         string     `json:"comment,omitempty" bson:"comment,omitempty"`
	TourDate        string     `json:"tour_date,omitempty" bson:"tour_date,omitempty"`
	VerifiedBooking bool       `json:"verified_booking" bson:"verified_booking"`
	Status          string     `json:"status" bson:"status"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
}

type ReviewRequest struct {
	TargetType TargetType `json:"target_type" validate:"required,oneof=guide business"`
	TargetID   string     `json:"target_id" validate:"required,mongodb"`
	Rating     int        `json:"rating" validate:"required,min=1,max=5"`
	Title      string     `json:"title,omitempty" validate:"omitempty,max=150"`
	Comment    string     `json:"comment,omitempty" validate:"omitempty,max=4000"`
	TourDate   string     `json:"tour_date,omitempty" validate:"omitempty,date"`
}

type ReviewUpdate struct {
	Rating   *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Title    *string `json:"title,omitempty" validate:"omitempty,max=150"`
	Comment  *string `json:"comment,omitempty" validate:"omitempty,max=4000"`
	TourDate *string `json:"tour_date,omitempty" validate:"omitempty,date"`
}

type ModerationUpdate struct {
	Status string `json:"status" validate:"required,oneof=published hidden flagged pending"`
}

// RatingSummary is the stored aggregate of an entity's published reviews.
// Count distinguishes "no reviews yet" from a genuine zero.
type RatingSummary struct {
	Average float64 `json:"average_rating" bson:"average_rating"`
	Count   int64   `json:"rating_count" bson:"rating_count"`
}

type ReviewFilter struct {
	TargetType    TargetType
	TargetID      string
	AuthorID      string
	IncludeHidden bool
}
