package model

import "time"

type Notification struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Type        string    `json:"type" bson:"type"`
	Title       string    `json:"title" bson:"title"`
	Message     string    `json:"message" bson:"message"`
	ReferenceID string    `json:"reference_id,omitempty" bson:"reference_id,omitempty"`
	EventID     string    `json:"event_id,omitempty" bson:"event_id,omitempty"`
	Read        bool      `json:"read" bson:"read"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
