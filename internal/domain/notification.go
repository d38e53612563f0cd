package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `json:"id" db:"notification_id"`
	Message   string     `json:"message" db:"message"`
	IsRead    bool       `json:"read" db:"is_read"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	IssueID   *uuid.UUID `json:"issue_id" db:"issue_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`

	IssueTitle *string `json:"issue_title,omitempty" db:"issue_title"`
}

type NotificationPage struct {
	PaginatedResponse[Notification]
	UnreadCount int64 `json:"unread_count"`
}
