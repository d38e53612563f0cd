package notification

import (
	"github.com/google/uuid"

	"public-pulse/internal/domain"
	"public-pulse/internal/pkg/i18n"
)

// Locale is the catalog used for stored notification text.
var Locale = "en"

func newNotification(recipient uuid.UUID, issueID *uuid.UUID, message string) *domain.Notification {
	return &domain.Notification{
		ID:      uuid.New(),
		Message: message,
		UserID:  recipient,
		IssueID: issueID,
	}
}

func StatusChanged(issue *domain.Issue, status domain.IssueStatus) *domain.Notification {
	id := issue.ID
	return newNotification(issue.AuthorID, &id, i18n.Format(Locale, i18n.KeyStatusChanged, issue.Title, status))
}

func DepartmentAssigned(issue *domain.Issue) *domain.Notification {
	id := issue.ID
	return newNotification(issue.AuthorID, &id, i18n.Format(Locale, i18n.KeyDepartmentAssigned, issue.Title))
}

// NewComment is addressed to the issue author; issue must be the thread's root issue.
func NewComment(issue *domain.Issue) *domain.Notification {
	id := issue.ID
	return newNotification(issue.AuthorID, &id, i18n.Format(Locale, i18n.KeyNewComment, issue.Title))
}

// NewReply is addressed to the author of the parent comment.
func NewReply(parent *domain.Comment, issue *domain.Issue) *domain.Notification {
	id := issue.ID
	return newNotification(parent.AuthorID, &id, i18n.Format(Locale, i18n.KeyNewReply, issue.Title))
}
