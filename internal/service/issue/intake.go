package issue

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"public-pulse/internal/domain"
	"public-pulse/internal/repository"
	"public-pulse/internal/storage"
)

// uploadAll stores every file concurrently. If any upload fails the objects that did
// make it are removed again and no locators are returned.
func (s *service) uploadAll(ctx context.Context, files []domain.Upload) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	locators := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			locator, err := s.Storage.Upload(gctx, file)
			if err != nil {
				return fmt.Errorf("upload %q: %w", file.FileName, err)
			}
			locators[i] = locator
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uploaded := make([]string, 0, len(locators))
		for _, locator := range locators {
			if locator != "" {
				uploaded = append(uploaded, locator)
			}
		}
		storage.DeleteAll(ctx, s.Storage, uploaded)
		return nil, err
	}
	return locators, nil
}

func insertImages(ctx context.Context, repos *repository.Repositories, issueID uuid.UUID, locators []string) error {
	for _, locator := range locators {
		if err := repos.Image.Create(ctx, &domain.Image{ID: uuid.New(), URL: locator, IssueID: issueID}); err != nil {
			return err
		}
	}
	return nil
}

// Create runs the intake pipeline: upload, classify, then write the issue and its images
// in one transaction. Classification never fails the request; a failed write removes the
// uploaded objects.
func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreateIssueInput, files []domain.Upload) (*domain.Issue, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" || input.Latitude == nil || input.Longitude == nil {
		return nil, domain.InvalidInput("Title, description, latitude and longitude are required")
	}
	if !validCoordinates(*input.Latitude, *input.Longitude) {
		return nil, domain.InvalidInput("Latitude or longitude out of range")
	}

	locators, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	verdict := s.Analyzer.Analyze(ctx, title, description)
	severity := verdict.Severity

	issue := &domain.Issue{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		Latitude:     *input.Latitude,
		Longitude:    *input.Longitude,
		Severity:     &severity,
		Status:       domain.StatusPending,
		DepartmentID: verdict.DepartmentID,
		AuthorID:     actor.ID,
	}

	err = s.Tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.Issue.Create(ctx, issue); err != nil {
			return err
		}
		return insertImages(ctx, repos, issue.ID, locators)
	})
	if err != nil {
		storage.DeleteAll(ctx, s.Storage, locators)
		return nil, err
	}

	return s.load(ctx, issue.ID)
}

// Update applies a partial edit. New files are uploaded before the transaction; with
// ReplaceImages the previous objects are removed only after the commit.
func (s *service) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateIssueInput, files []domain.Upload) (*domain.Issue, error) {
	existing, err := s.IssueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NotFound("Issue not found")
	}
	if existing.AuthorID != actor.ID && !actor.IsStaff() {
		return nil, domain.Forbidden("You are not allowed to update this issue")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.InvalidInput("Title cannot be empty")
		}
		existing.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, domain.InvalidInput("Description cannot be empty")
		}
		existing.Description = description
	}
	if input.Latitude != nil {
		existing.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		existing.Longitude = *input.Longitude
	}
	if !validCoordinates(existing.Latitude, existing.Longitude) {
		return nil, domain.InvalidInput("Latitude or longitude out of range")
	}
	if input.Severity != nil {
		if *input.Severity < domain.MinSeverity || *input.Severity > domain.MaxSeverity {
			return nil, domain.InvalidInput("Severity must be between 1 and 10")
		}
		existing.Severity = input.Severity
	}

	locators, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	var replaced []string
	err = s.Tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.Issue.Update(ctx, existing); err != nil {
			return err
		}

		if input.ReplaceImages {
			old, err := repos.Image.ListByIssue(ctx, id)
			if err != nil {
				return err
			}
			for _, img := range old {
				replaced = append(replaced, img.URL)
			}
			if err := repos.Image.DeleteByIssue(ctx, id); err != nil {
				return err
			}
		}

		return insertImages(ctx, repos, id, locators)
	})
	if err != nil {
		storage.DeleteAll(ctx, s.Storage, locators)
		return nil, err
	}

	storage.DeleteAll(ctx, s.Storage, replaced)
	return s.load(ctx, id)
}
