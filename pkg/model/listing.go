package model

import "time"

type TargetType string

const (
	TargetGuide    TargetType = "guide"
	TargetBusiness TargetType = "business"
)

func (t TargetType) Valid() bool {
	return t == TargetGuide || t == TargetBusiness
}

type Guide struct {
	ID              string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID          string     `json:"user_id" bson:"user_id" validate:"required,min=1,max=128"`
	Name            string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Bio             string     `json:"bio,omitempty" bson:"bio,omitempty" validate:"omitempty,max=2000"`
	City            string     `json:"city,omitempty" bson:"city,omitempty" validate:"omitempty,min=2,max=100"`
	YearsExperience int        `json:"years_experience" bson:"years_experience" validate:"min=0,max=80"`
	Languages       []string   `json:"languages" bson:"languages" validate:"required,min=1,max=20,dive,min=2,max=40"`
	Specialties     []string   `json:"specialties,omitempty" bson:"specialties,omitempty" validate:"omitempty,max=20,dive,min=2,max=60"`
	DailyRate       float64    `json:"daily_rate" bson:"daily_rate" validate:"gte=0,lte=100000"`
	Phone           string     `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	IsApproved      bool       `json:"is_approved" bson:"is_approved"`
	IsAvailable     bool       `json:"is_available" bson:"is_available"`
	AverageRating   float64    `json:"average_rating" bson:"average_rating"`
	RatingCount     int64      `json:"rating_count" bson:"rating_count"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
}

type GuideUpdate struct {
	Name            *string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio             *string   `json:"bio,omitempty" validate:"omitempty,max=2000"`
	City            *string   `json:"city,omitempty" validate:"omitempty,min=2,max=100"`
	YearsExperience *int      `json:"years_experience,omitempty" validate:"omitempty,min=0,max=80"`
	Languages       *[]string `json:"languages,omitempty" validate:"omitempty,min=1,max=20,dive,min=2,max=40"`
	Specialties     *[]string `json:"specialties,omitempty" validate:"omitempty,max=20,dive,min=2,max=60"`
	DailyRate       *float64  `json:"daily_rate,omitempty" validate:"omitempty,gte=0,lte=100000"`
	Phone           *string   `json:"phone,omitempty" validate:"omitempty,e164"`
}

// GuideFlags are the admin-controlled switches on a guide profile.
type GuideFlags struct {
	IsApproved  *bool `json:"is_approved,omitempty"`
	IsAvailable *bool `json:"is_available,omitempty"`
}

type Business struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID       string    `json:"owner_id" bson:"owner_id" validate:"required,min=1,max=128"`
	Name          string    `json:"name" bson:"name" validate:"required,min=2,max=150"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=4000"`
	Category      string    `json:"category" bson:"category" validate:"required,min=2,max=60"`
	City          string    `json:"city" bson:"city" validate:"required,min=2,max=100"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=300"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	AverageRating float64   `json:"average_rating" bson:"average_rating"`
	RatingCount   int64     `json:"rating_count" bson:"rating_count"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

type BusinessUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=2,max=60"`
	City        *string `json:"city,omitempty" validate:"omitempty,min=2,max=100"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=300"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// Target is the bookable, reviewable view of a guide or business.
type Target struct {
	Type      TargetType `json:"type"`
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Approved  bool       `json:"approved"`
	Available bool       `json:"available"`
}

func (g *Guide) AsTarget() *Target {
	return &Target{
		Type:      TargetGuide,
		ID:        g.ID,
		OwnerID:   g.UserID,
		Approved:  g.IsApproved,
		Available: g.IsAvailable,
	}
}

func (b *Business) AsTarget() *Target {
	return &Target{
		Type:      TargetBusiness,
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Approved:  true,
		Available: true,
	}
}

type ListingFilter struct {
	City     string
	Language string
	Category string
	// IncludeUnapproved lists guides still awaiting approval, admins only.
	IncludeUnapproved bool
}
