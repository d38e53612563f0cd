package domain

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID        uuid.UUID `json:"id" db:"department_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type DepartmentCounts struct {
	Users  int64 `json:"users"`
	Issues int64 `json:"issues"`
}

type DepartmentWithCounts struct {
	Department
	Count DepartmentCounts `json:"_count"`
}

type DepartmentDetail struct {
	Department
	Users  []UserSummary    `json:"users"`
	Issues []Issue          `json:"issues"`
	Count  DepartmentCounts `json:"_count"`
}

type DepartmentInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

type AssignUserInput struct {
	UserID       *uuid.UUID `json:"user_id" validate:"required"`
	DepartmentID *uuid.UUID `json:"department_id"`
}
