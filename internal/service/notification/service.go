package notification

import (
	"context"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
	"public-pulse/internal/repository"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.NotificationPage, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	notifRepo repository.NotificationRepository
}

func NewService(notifRepo repository.NotificationRepository) Service {
	return &service{notifRepo: notifRepo}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.NotificationPage, error) {
	params.Validate()

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.NotificationPage{
		PaginatedResponse: domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total),
		UnreadCount:       unread,
	}, nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// owned loads a notification addressed to userID. Someone else's notification is reported
// as missing so ids cannot be probed.
func (s *service) owned(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error) {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notif == nil || notif.UserID != userID {
		return nil, domain.NotFound("Notification not found")
	}
	return notif, nil
}

func (s *service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error) {
	notif, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !notif.IsRead {
		if err := s.notifRepo.MarkAsRead(ctx, id); err != nil {
			return nil, err
		}
		notif.IsRead = true
	}
	return notif, nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.notifRepo.Delete(ctx, id)
}
