package model

type Role string

const (
	RoleCustomer      Role = "customer"
	RoleGuide         Role = "guide"
	RoleBusinessOwner Role = "business_owner"
	RoleAdmin         Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleGuide, RoleBusinessOwner, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) Is(role Role) bool {
	return a.Role == role
}
