package domain

import (
	"time"

	"github.com/google/uuid"
)

type VoteType string

const (
	VoteUp   VoteType = "UPVOTE"
	VoteDown VoteType = "DOWNVOTE"
)

func (t VoteType) IsValid() bool {
	return t == VoteUp || t == VoteDown
}

type Vote struct {
	ID        uuid.UUID  `json:"id" db:"vote_id"`
	Type      VoteType   `json:"type" db:"type"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	IssueID   *uuid.UUID `json:"issue_id,omitempty" db:"issue_id"`
	CommentID *uuid.UUID `json:"comment_id,omitempty" db:"comment_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// VoteTarget names exactly one of an issue or a comment.
type VoteTarget struct {
	IssueID   *uuid.UUID `json:"issue_id" query:"issue_id"`
	CommentID *uuid.UUID `json:"comment_id" query:"comment_id"`
}

func (t VoteTarget) Validate() error {
	if t.IssueID == nil && t.CommentID == nil {
		return InvalidInput("Either issue_id or comment_id is required")
	}
	if t.IssueID != nil && t.CommentID != nil {
		return InvalidInput("Cannot vote on both issue and comment simultaneously")
	}
	return nil
}

type VoteInput struct {
	Type VoteType `json:"type" validate:"required,oneof=UPVOTE DOWNVOTE"`
	VoteTarget
}

type VoteSummary struct {
	Upvotes   int64     `json:"upvotes" db:"upvotes"`
	Downvotes int64     `json:"downvotes" db:"downvotes"`
	UserVote  *VoteType `json:"user_vote" db:"-"`
}
