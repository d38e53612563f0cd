package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCitizen    UserRole = "CITIZEN"
	RoleGovernment UserRole = "GOVERNMENT"
	RoleAdmin      UserRole = "ADMIN"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCitizen, RoleGovernment, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID           uuid.UUID  `json:"id" db:"user_id"`
	ExternalID   *string    `json:"-" db:"external_id"`
	Name         *string    `json:"name" db:"name"`
	Email        *string    `json:"email,omitempty" db:"email"`
	ProfileURL   *string    `json:"profile_url,omitempty" db:"profile_url"`
	Role         UserRole   `json:"role" db:"role"`
	DepartmentID *uuid.UUID `json:"department_id" db:"department_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`

	Department *Department `json:"department,omitempty" db:"-"`
}

// HasAnyRole reports whether the user holds one of roles. Admins pass every check.
func (u *User) HasAnyRole(roles ...UserRole) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleGovernment
}

// UserSummary is the author/actor shape embedded in issues, comments and status logs.
type UserSummary struct {
	ID         uuid.UUID `json:"id" db:"user_id"`
	Name       *string   `json:"name" db:"name"`
	Role       UserRole  `json:"role,omitempty" db:"role"`
	ProfileURL *string   `json:"profile_url,omitempty" db:"profile_url"`
}

type SignupInput struct {
	Name         string     `json:"name" validate:"required,max=255"`
	Email        string     `json:"email" validate:"required,email"`
	ProfileURL   *string    `json:"profile_url" validate:"omitempty,url"`
	DepartmentID *uuid.UUID `json:"department_id"`
	AdminSecret  string     `json:"admin_secret"`
}

type CreateUserInput struct {
	ExternalID   string     `json:"external_id" validate:"required"`
	Name         string     `json:"name" validate:"required,max=255"`
	Email        string     `json:"email" validate:"required,email"`
	Role         UserRole   `json:"role" validate:"required,oneof=CITIZEN GOVERNMENT ADMIN"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

type UpdateUserInput struct {
	Name         *string     `json:"name,omitempty"`
	Email        *string     `json:"email,omitempty" validate:"omitempty,email"`
	ProfileURL   *string     `json:"profile_url,omitempty"`
	Role         *UserRole   `json:"role,omitempty"`
	DepartmentID OptionalUUID `json:"department_id"`
}

type UserFilter struct {
	Role         *UserRole
	DepartmentID *uuid.UUID
	Search       string
}

// OptionalUUID tells an absent JSON field apart from an explicit null.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}
