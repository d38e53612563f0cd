package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID  `json:"id" db:"comment_id"`
	Content   string     `json:"content" db:"content"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id"`
	IssueID   *uuid.UUID `json:"issue_id" db:"issue_id"`
	ParentID  *uuid.UUID `json:"parent_id" db:"parent_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`

	Author     *UserSummary `json:"author,omitempty" db:"-"`
	ReplyCount *int64       `json:"reply_count,omitempty" db:"-"`
	Replies    []Comment    `json:"replies,omitempty" db:"-"`
	Votes      *VoteSummary `json:"votes,omitempty" db:"-"`
}

type CreateCommentInput struct {
	Content  string     `json:"content" validate:"required"`
	IssueID  *uuid.UUID `json:"issue_id"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type UpdateCommentInput struct {
	Content string `json:"content" validate:"required"`
}

type CommentThreadPage struct {
	PaginatedResponse[Comment]
	TotalComments int64 `json:"total_comments"`
}
