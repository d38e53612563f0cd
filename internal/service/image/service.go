package image

import (
	"context"
	"log"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
	"public-pulse/internal/repository"
	"public-pulse/internal/storage"
)

type Service interface {
	Sign(ctx context.Context, images []domain.Image)
	AttachToIssues(ctx context.Context, issues []domain.Issue, firstOnly bool) error
	Delete(ctx context.Context, actor *domain.User, imageID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Image, error)
}

type service struct {
	imageRepo repository.ImageRepository
	issueRepo repository.IssueRepository
	storage   storage.Gateway
}

func NewService(imageRepo repository.ImageRepository, issueRepo repository.IssueRepository, gateway storage.Gateway) Service {
	return &service{
		imageRepo: imageRepo,
		issueRepo: issueRepo,
		storage:   gateway,
	}
}

// Sign replaces each stored locator with a time-limited download URL. An image that
// cannot be signed keeps its locator.
func (s *service) Sign(ctx context.Context, images []domain.Image) {
	for i := range images {
		url, err := s.storage.SignedURL(ctx, images[i].URL, storage.SignedURLExpiry)
		if err != nil {
			log.Printf("Failed to sign image %s: %v", images[i].ID, err)
			continue
		}
		images[i].URL = url
	}
}

// AttachToIssues loads and signs the images of every issue with one query. With firstOnly
// each issue keeps only its earliest image.
func (s *service) AttachToIssues(ctx context.Context, issues []domain.Issue, firstOnly bool) error {
	if len(issues) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(issues))
	for i := range issues {
		ids[i] = issues[i].ID
	}

	images, err := s.imageRepo.ListByIssues(ctx, ids)
	if err != nil {
		return err
	}

	byIssue := make(map[uuid.UUID][]domain.Image, len(issues))
	for _, img := range images {
		if firstOnly && len(byIssue[img.IssueID]) > 0 {
			continue
		}
		byIssue[img.IssueID] = append(byIssue[img.IssueID], img)
	}

	for i := range issues {
		attached := byIssue[issues[i].ID]
		if attached == nil {
			attached = []domain.Image{}
		}
		s.Sign(ctx, attached)
		issues[i].Images = attached
	}
	return nil
}

func (s *service) Delete(ctx context.Context, actor *domain.User, imageID uuid.UUID) error {
	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img == nil {
		return domain.NotFound("Image not found")
	}

	issue, err := s.issueRepo.GetByID(ctx, img.IssueID)
	if err != nil {
		return err
	}
	if issue == nil {
		return domain.NotFound("Issue not found")
	}
	if issue.AuthorID != actor.ID && !actor.IsStaff() {
		return domain.Forbidden("You are not allowed to delete this image")
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, img.URL); err != nil {
		log.Printf("Failed to delete object %s for image %s: %v", img.URL, img.ID, err)
	}
	return nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Image, error) {
	images, err := s.imageRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []domain.Image{}
	}
	s.Sign(ctx, images)
	return images, nil
}
