package types

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User is the stored account. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
	Email        string    `json:"email" example:"alice@example.com"`
	FullName     string    `json:"full_name" example:"Alice Doe"`
	Role         UserRole  `json:"role" example:"customer"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UpdateProfileParams uses pointers so that an absent field is left untouched.
type UpdateProfileParams struct {
	FullName *string   `json:"full_name,omitempty" example:"Alice Doe"`
	Password *string   `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     *UserRole `json:"role,omitempty" validate:"omitempty,oneof=admin customer" example:"customer"`
}

// UserUpdate is what the credential store applies after authorization rules ran.
type UserUpdate struct {
	FullName     *string
	PasswordHash *string
	Role         *UserRole
}

func (u UserUpdate) Empty() bool {
	return u.FullName == nil && u.PasswordHash == nil && u.Role == nil
}
