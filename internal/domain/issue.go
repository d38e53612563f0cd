package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

type IssueStatus string

const (
	StatusPending IssueStatus = "PENDING"
	StatusOngoing IssueStatus = "ONGOING"
	StatusPaused  IssueStatus = "PAUSED"
	StatusClosed  IssueStatus = "CLOSED"
)

func (s IssueStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusOngoing, StatusPaused, StatusClosed:
		return true
	default:
		return false
	}
}

const (
	MinSeverity     = 1
	MaxSeverity     = 10
	DefaultSeverity = 5
)

type Issue struct {
	ID           uuid.UUID   `json:"id" db:"issue_id"`
	Title        string      `json:"title" db:"title"`
	Description  string      `json:"description" db:"description"`
	Latitude     float64     `json:"latitude" db:"latitude"`
	Longitude    float64     `json:"longitude" db:"longitude"`
	Severity     *int        `json:"severity" db:"severity"`
	Status       IssueStatus `json:"status" db:"status"`
	DepartmentID *uuid.UUID  `json:"department_id" db:"department_id"`
	AuthorID     uuid.UUID   `json:"author_id" db:"author_id"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`

	Author     *UserSummary    `json:"author,omitempty" db:"-"`
	Department *Department     `json:"department" db:"-"`
	Images     []Image         `json:"images" db:"-"`
	Comments   []Comment       `json:"comments,omitempty" db:"-"`
	StatusLogs []StatusHistory `json:"status_logs,omitempty" db:"-"`
	Votes      *VoteSummary    `json:"votes,omitempty" db:"-"`
	Count      *IssueCounts    `json:"_count,omitempty" db:"-"`
	Distance   *float64        `json:"distance,omitempty" db:"-"`
}

type IssueCounts struct {
	Comments int64 `json:"comments" db:"comment_count"`
	Votes    int64 `json:"votes" db:"vote_count"`
}

type Image struct {
	ID        uuid.UUID `json:"id" db:"image_id"`
	URL       string    `json:"url" db:"url"`
	IssueID   uuid.UUID `json:"issue_id" db:"issue_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type StatusHistory struct {
	ID          uuid.UUID   `json:"id" db:"history_id"`
	Status      IssueStatus `json:"status" db:"status"`
	ChangedAt   time.Time   `json:"changed_at" db:"changed_at"`
	IssueID     uuid.UUID   `json:"issue_id" db:"issue_id"`
	ChangedByID uuid.UUID   `json:"changed_by_id" db:"changed_by"`

	ChangedBy *UserSummary `json:"changed_by,omitempty" db:"-"`
}

// Upload is one file attached to an issue, streamed straight into object storage.
type Upload struct {
	FileName    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type CreateIssueInput struct {
	Title       string   `json:"title" form:"title" validate:"required,max=255"`
	Description string   `json:"description" form:"description" validate:"required"`
	Latitude    *float64 `json:"latitude" form:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude" validate:"required,longitude"`
}

type UpdateIssueInput struct {
	Title         *string  `json:"title" form:"title" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description" form:"description"`
	Latitude      *float64 `json:"latitude" form:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" form:"longitude" validate:"omitempty,longitude"`
	Severity      *int     `json:"severity" form:"severity" validate:"omitempty,min=1,max=10"`
	ReplaceImages bool     `json:"replace_images" form:"replace_images"`
}

type UpdateStatusInput struct {
	Status IssueStatus `json:"status" validate:"required,oneof=PENDING ONGOING PAUSED CLOSED"`
}

type AssignDepartmentInput struct {
	DepartmentID *uuid.UUID `json:"department_id"`
}

type IssueFilter struct {
	Status       *IssueStatus
	DepartmentID *uuid.UUID
	AuthorID     *uuid.UUID
	Search       string
}

type NearbyQuery struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius"`
}

type NearbyResult struct {
	Issues []Issue     `json:"issues"`
	Query  NearbyQuery `json:"query"`
}

// Analysis is the classifier verdict stored on a new issue.
type Analysis struct {
	Severity     int        `json:"severity"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

func DefaultAnalysis() Analysis {
	return Analysis{Severity: DefaultSeverity}
}

// IssueStats summarises the issue table for the public dashboard.
type IssueStats struct {
	Total           int64    `json:"total" db:"total"`
	Pending         int64    `json:"pending" db:"pending"`
	Ongoing         int64    `json:"ongoing" db:"ongoing"`
	Paused          int64    `json:"paused" db:"paused"`
	Closed          int64    `json:"closed" db:"closed"`
	Unclassified    int64    `json:"unclassified" db:"unclassified"`
	AverageSeverity *float64 `json:"average_severity" db:"average_severity"`
}

// AssignedIssuePage is the government work queue. Message explains an empty queue for
// staff without a department.
type AssignedIssuePage struct {
	PaginatedResponse[Issue]
	Message string `json:"message,omitempty"`
}
