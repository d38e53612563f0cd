package issue

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"public-pulse/internal/domain"
	"public-pulse/internal/pkg/geo"
	"public-pulse/internal/repository"
	"public-pulse/internal/service/analysis"
	"public-pulse/internal/service/email"
	"public-pulse/internal/service/image"
	"public-pulse/internal/service/notification"
	"public-pulse/internal/storage"
)

const (
	DefaultRadiusKm = 5.0
	MaxNearby       = 50
	recentComments  = 10
)

type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateIssueInput, files []domain.Upload) (*domain.Issue, error)
	Get(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Issue, error)
	List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams, viewer *domain.User) (*domain.PaginatedResponse[domain.Issue], error)
	Nearby(ctx context.Context, query domain.NearbyQuery) (*domain.NearbyResult, error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateIssueInput, files []domain.Upload) (*domain.Issue, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateStatusInput) (*domain.Issue, error)
	AssignDepartment(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.AssignDepartmentInput) (*domain.Issue, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error
	ListByAuthor(ctx context.Context, authorID uuid.UUID, params domain.PaginationParams, viewer *domain.User) (*domain.PaginatedResponse[domain.Issue], error)
	ListAssigned(ctx context.Context, actor *domain.User, status *domain.IssueStatus, params domain.PaginationParams) (*domain.AssignedIssuePage, error)
}

// Dependencies groups the collaborators of the issue service.
type Dependencies struct {
	Tx             repository.Transactor
	IssueRepo      repository.IssueRepository
	ImageRepo      repository.ImageRepository
	CommentRepo    repository.CommentRepository
	StatusRepo     repository.StatusHistoryRepository
	VoteRepo       repository.VoteRepository
	DepartmentRepo repository.DepartmentRepository
	UserRepo       repository.UserRepository
	Images         image.Service
	Storage        storage.Gateway
	Analyzer       analysis.Service
	Email          email.Service
}

type service struct {
	Dependencies
}

func NewService(deps Dependencies) Service {
	return &service{Dependencies: deps}
}

func viewerID(viewer *domain.User) *uuid.UUID {
	if viewer == nil {
		return nil
	}
	return &viewer.ID
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// load reads one issue with author, department and signed images.
func (s *service) load(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	issue, err := s.IssueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.NotFound("Issue not found")
	}

	images, err := s.ImageRepo.ListByIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []domain.Image{}
	}
	s.Images.Sign(ctx, images)
	issue.Images = images
	return issue, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Issue, error) {
	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		comments []domain.Comment
		logs     []domain.StatusHistory
		votes    domain.VoteSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, _, err = s.CommentRepo.ListTopLevel(gctx, id, domain.PaginationParams{Page: 1, PageSize: recentComments})
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = s.StatusRepo.ListByIssue(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		votes, err = s.VoteRepo.Summary(gctx, domain.VoteTarget{IssueID: &id}, viewerID(viewer))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if comments == nil {
		comments = []domain.Comment{}
	}
	if logs == nil {
		logs = []domain.StatusHistory{}
	}
	issue.Comments = comments
	issue.StatusLogs = logs
	issue.Votes = &votes
	return issue, nil
}

// decorate attaches signed images and vote summaries to a page of issues.
func (s *service) decorate(ctx context.Context, issues []domain.Issue, firstImageOnly bool, viewer *domain.User) error {
	if len(issues) == 0 {
		return nil
	}
	if err := s.Images.AttachToIssues(ctx, issues, firstImageOnly); err != nil {
		return err
	}

	ids := make([]uuid.UUID, len(issues))
	for i := range issues {
		ids[i] = issues[i].ID
	}
	votes, err := s.VoteRepo.SummariesByIssue(ctx, ids, viewerID(viewer))
	if err != nil {
		return err
	}
	for i := range issues {
		summary := votes[issues[i].ID]
		issues[i].Votes = &summary
	}
	return nil
}

func (s *service) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams, viewer *domain.User) (*domain.PaginatedResponse[domain.Issue], error) {
	params.Validate()

	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.InvalidInput("Invalid status filter")
	}
	filter.Search = strings.TrimSpace(filter.Search)

	issues, total, err := s.IssueRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, issues, false, viewer); err != nil {
		return nil, err
	}

	resp := domain.NewPaginatedResponse(issues, params.Page, params.PageSize, total)
	return &resp, nil
}

func (s *service) ListByAuthor(ctx context.Context, authorID uuid.UUID, params domain.PaginationParams, viewer *domain.User) (*domain.PaginatedResponse[domain.Issue], error) {
	user, err := s.UserRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}
	return s.List(ctx, domain.IssueFilter{AuthorID: &authorID}, params, viewer)
}

func (s *service) ListAssigned(ctx context.Context, actor *domain.User, status *domain.IssueStatus, params domain.PaginationParams) (*domain.AssignedIssuePage, error) {
	params.Validate()

	if actor.DepartmentID == nil {
		return &domain.AssignedIssuePage{
			PaginatedResponse: domain.NewPaginatedResponse([]domain.Issue{}, params.Page, params.PageSize, 0),
			Message:           "You are not assigned to any department",
		}, nil
	}

	page, err := s.List(ctx, domain.IssueFilter{Status: status, DepartmentID: actor.DepartmentID}, params, actor)
	if err != nil {
		return nil, err
	}
	return &domain.AssignedIssuePage{PaginatedResponse: *page}, nil
}

// Nearby narrows candidates with a bounding box in SQL and keeps those strictly closer
// than the radius by great-circle distance, nearest first.
func (s *service) Nearby(ctx context.Context, query domain.NearbyQuery) (*domain.NearbyResult, error) {
	if !validCoordinates(query.Latitude, query.Longitude) {
		return nil, domain.InvalidInput("Valid latitude and longitude are required")
	}
	if query.RadiusKm <= 0 || math.IsNaN(query.RadiusKm) || math.IsInf(query.RadiusKm, 0) {
		query.RadiusKm = DefaultRadiusKm
	}

	candidates, err := s.IssueRepo.ListInBox(ctx, geo.Box(query.Latitude, query.Longitude, query.RadiusKm))
	if err != nil {
		return nil, err
	}

	issues := make([]domain.Issue, 0, len(candidates))
	for _, candidate := range candidates {
		d := geo.Distance(query.Latitude, query.Longitude, candidate.Latitude, candidate.Longitude)
		if d >= query.RadiusKm {
			continue
		}
		candidate.Distance = &d
		issues = append(issues, candidate)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return *issues[i].Distance < *issues[j].Distance
	})
	if len(issues) > MaxNearby {
		issues = issues[:MaxNearby]
	}

	if err := s.decorate(ctx, issues, true, nil); err != nil {
		return nil, err
	}

	return &domain.NearbyResult{Issues: issues, Query: query}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateStatusInput) (*domain.Issue, error) {
	if !actor.IsStaff() {
		return nil, domain.Forbidden("Only government or admin users can change issue status")
	}
	if !input.Status.IsValid() {
		return nil, domain.InvalidInput("Status must be one of PENDING, ONGOING, PAUSED, CLOSED")
	}

	var current *domain.Issue
	err := s.Tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		issue, err := repos.Issue.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if issue == nil {
			return domain.NotFound("Issue not found")
		}
		current = issue

		if err := repos.Issue.UpdateStatus(ctx, id, input.Status); err != nil {
			return err
		}
		if err := repos.StatusHistory.Create(ctx, &domain.StatusHistory{
			ID:          uuid.New(),
			Status:      input.Status,
			IssueID:     id,
			ChangedByID: actor.ID,
		}); err != nil {
			return err
		}
		return repos.Notification.Create(ctx, notification.StatusChanged(issue, input.Status))
	})
	if err != nil {
		return nil, err
	}

	s.emailAuthor(ctx, current.AuthorID, func(to, name string) error {
		return s.Email.SendStatusUpdateEmail(ctx, to, name, current.Title, input.Status)
	})

	return s.Get(ctx, id, actor)
}

func (s *service) AssignDepartment(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.AssignDepartmentInput) (*domain.Issue, error) {
	if !actor.IsStaff() {
		return nil, domain.Forbidden("Only government or admin users can assign departments")
	}

	var department *domain.Department
	if input.DepartmentID != nil {
		dept, err := s.DepartmentRepo.GetByID(ctx, *input.DepartmentID)
		if err != nil {
			return nil, err
		}
		if dept == nil {
			return nil, domain.NotFound("Department not found")
		}
		department = dept
	}

	var current *domain.Issue
	err := s.Tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		issue, err := repos.Issue.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if issue == nil {
			return domain.NotFound("Issue not found")
		}
		current = issue

		if err := repos.Issue.SetDepartment(ctx, id, input.DepartmentID); err != nil {
			return err
		}
		if department == nil {
			return nil
		}
		return repos.Notification.Create(ctx, notification.DepartmentAssigned(issue))
	})
	if err != nil {
		return nil, err
	}

	if department != nil {
		s.emailAuthor(ctx, current.AuthorID, func(to, name string) error {
			return s.Email.SendDepartmentAssignedEmail(ctx, to, name, current.Title, department.Name)
		})
	}

	return s.Get(ctx, id, actor)
}

// Delete removes the issue and everything hanging off it in one transaction, then drops
// the stored objects once the rows are gone.
func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	issue, err := s.IssueRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if issue == nil {
		return domain.NotFound("Issue not found")
	}
	if issue.AuthorID != actor.ID && !actor.IsAdmin() {
		return domain.Forbidden("Only the author or an admin can delete this issue")
	}

	var locators []string
	err = s.Tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		images, err := repos.Image.ListByIssue(ctx, id)
		if err != nil {
			return err
		}
		for _, img := range images {
			locators = append(locators, img.URL)
		}

		commentIDs, err := repos.Comment.ThreadIDs(ctx, id)
		if err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := repos.Vote.DeleteByComments(ctx, commentIDs); err != nil {
				return err
			}
		}
		if err := repos.Vote.DeleteByIssue(ctx, id); err != nil {
			return err
		}
		if err := repos.Comment.DeleteMany(ctx, commentIDs); err != nil {
			return err
		}
		if err := repos.Image.DeleteByIssue(ctx, id); err != nil {
			return err
		}
		if err := repos.StatusHistory.DeleteByIssue(ctx, id); err != nil {
			return err
		}
		if err := repos.Notification.DeleteByIssue(ctx, id); err != nil {
			return err
		}
		return repos.Issue.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	storage.DeleteAll(ctx, s.Storage, locators)
	return nil
}

// emailAuthor looks up the author's address and runs send. Failures are only logged.
func (s *service) emailAuthor(ctx context.Context, authorID uuid.UUID, send func(to, name string) error) {
	author, err := s.UserRepo.GetByID(ctx, authorID)
	if err != nil {
		log.Printf("Failed to load issue author %s for email: %v", authorID, err)
		return
	}
	if author == nil || author.Email == nil || *author.Email == "" {
		return
	}

	name := ""
	if author.Name != nil {
		name = *author.Name
	}
	if err := send(*author.Email, name); err != nil {
		log.Printf("Failed to send email to %s: %v", *author.Email, err)
	}
}
