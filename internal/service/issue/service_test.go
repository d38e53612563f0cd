package issue_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"public-pulse/internal/domain"
	"public-pulse/internal/mocks"
	"public-pulse/internal/repository"
	"public-pulse/internal/service/analysis"
	"public-pulse/internal/service/image"
	"public-pulse/internal/service/issue"
	"public-pulse/internal/storage"
)

type fixture struct {
	issues        *mocks.IssueRepository
	images        *mocks.ImageRepository
	comments      *mocks.CommentRepository
	history       *mocks.StatusHistoryRepository
	votes         *mocks.VoteRepository
	departments   *mocks.DepartmentRepository
	users         *mocks.UserRepository
	notifications *mocks.NotificationRepository
	gateway       *mocks.StorageGateway
	analyzer      *mocks.AnalysisService
	email         *mocks.EmailService
	tx            *mocks.Transactor
	deps          issue.Dependencies
	svc           issue.Service
}

func newFixture() *fixture {
	f := &fixture{
		issues:        new(mocks.IssueRepository),
		images:        new(mocks.ImageRepository),
		comments:      new(mocks.CommentRepository),
		history:       new(mocks.StatusHistoryRepository),
		votes:         new(mocks.VoteRepository),
		departments:   new(mocks.DepartmentRepository),
		users:         new(mocks.UserRepository),
		notifications: new(mocks.NotificationRepository),
		gateway:       new(mocks.StorageGateway),
		analyzer:      new(mocks.AnalysisService),
		email:         new(mocks.EmailService),
	}
	f.tx = &mocks.Transactor{Repos: &repository.Repositories{
		User:          f.users,
		Department:    f.departments,
		Issue:         f.issues,
		Image:         f.images,
		StatusHistory: f.history,
		Comment:       f.comments,
		Vote:          f.votes,
		Notification:  f.notifications,
	}}
	f.deps = issue.Dependencies{
		Tx:             f.tx,
		IssueRepo:      f.issues,
		ImageRepo:      f.images,
		CommentRepo:    f.comments,
		StatusRepo:     f.history,
		VoteRepo:       f.votes,
		DepartmentRepo: f.departments,
		UserRepo:       f.users,
		Images:         image.NewService(f.images, f.issues, f.gateway),
		Storage:        f.gateway,
		Analyzer:       f.analyzer,
		Email:          f.email,
	}
	f.svc = issue.NewService(f.deps)
	return f
}

// expectGet wires the reads behind a full issue fetch.
func (f *fixture) expectGet(stored *domain.Issue) {
	f.issues.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)
	f.images.On("ListByIssue", mock.Anything, stored.ID).Return([]domain.Image{}, nil)
	f.comments.On("ListTopLevel", mock.Anything, stored.ID, domain.PaginationParams{Page: 1, PageSize: 10}).Return([]domain.Comment{}, int64(0), nil)
	f.history.On("ListByIssue", mock.Anything, stored.ID).Return([]domain.StatusHistory{}, nil)
	f.votes.On("Summary", mock.Anything, mock.Anything, mock.Anything).Return(domain.VoteSummary{}, nil)
}

func float(v float64) *float64 { return &v }

func upload(name string) domain.Upload {
	return domain.Upload{FileName: name, ContentType: "image/jpeg", Size: 3, Reader: strings.NewReader("abc")}
}

func byName(name string) interface{} {
	return mock.MatchedBy(func(u domain.Upload) bool { return u.FileName == name })
}

func TestIssueService_Create(t *testing.T) {
	citizen := &domain.User{ID: uuid.New(), Role: domain.RoleCitizen}
	input := domain.CreateIssueInput{Title: "Pothole", Description: "deep crack", Latitude: float(-6.2), Longitude: float(106.8)}

	t.Run("Uploads, classifies and stores images", func(t *testing.T) {
		f := newFixture()
		deptID := uuid.New()

		f.gateway.On("Upload", mock.Anything, byName("a.jpg")).Return("uploads/1-a.jpg", nil).Once()
		f.gateway.On("Upload", mock.Anything, byName("b.jpg")).Return("uploads/2-b.jpg", nil).Once()
		f.analyzer.On("Analyze", mock.Anything, "Pothole", "deep crack").Return(domain.Analysis{Severity: 7, DepartmentID: &deptID}).Once()

		var created *domain.Issue
		f.issues.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.Issue) bool {
			return i.Status == domain.StatusPending && *i.Severity == 7 && *i.DepartmentID == deptID && i.AuthorID == citizen.ID
		})).Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Issue) }).Return(nil).Once()
		f.images.On("Create", mock.Anything, mock.MatchedBy(func(img *domain.Image) bool { return img.URL == "uploads/1-a.jpg" })).Return(nil).Once()
		f.images.On("Create", mock.Anything, mock.MatchedBy(func(img *domain.Image) bool { return img.URL == "uploads/2-b.jpg" })).Return(nil).Once()

		reread := &domain.Issue{Title: "Pothole", Status: domain.StatusPending, AuthorID: citizen.ID}
		f.issues.On("GetByID", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			reread.ID = args.Get(1).(uuid.UUID)
			reread.Severity = created.Severity
			reread.DepartmentID = created.DepartmentID
		}).Return(reread, nil).Once()
		f.images.On("ListByIssue", mock.Anything, mock.Anything).Return([]domain.Image{
			{URL: "uploads/1-a.jpg"}, {URL: "uploads/2-b.jpg"},
		}, nil).Once()
		f.gateway.On("SignedURL", mock.Anything, "uploads/1-a.jpg", storage.SignedURLExpiry).Return("https://signed/a", nil).Once()
		f.gateway.On("SignedURL", mock.Anything, "uploads/2-b.jpg", storage.SignedURLExpiry).Return("https://signed/b", nil).Once()

		got, err := f.svc.Create(context.Background(), citizen, input, []domain.Upload{upload("a.jpg"), upload("b.jpg")})

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, domain.StatusPending, got.Status)
		require.Len(t, got.Images, 2)
		assert.Equal(t, "https://signed/a", got.Images[0].URL)
		assert.Equal(t, "https://signed/b", got.Images[1].URL)
		f.images.AssertExpectations(t)
		f.gateway.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Classifier outage still creates with defaults", func(t *testing.T) {
		f := newFixture()
		llmClient := new(mocks.LLMClient)
		llmClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))
		f.deps.Analyzer = analysis.NewService(llmClient, nil, 0)
		f.svc = issue.NewService(f.deps)

		f.issues.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.Issue) bool {
			return *i.Severity == 5 && i.DepartmentID == nil && i.Status == domain.StatusPending
		})).Return(nil).Once()
		f.issues.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Issue{Status: domain.StatusPending}, nil).Once()
		f.images.On("ListByIssue", mock.Anything, mock.Anything).Return([]domain.Image(nil), nil).Once()

		got, err := f.svc.Create(context.Background(), citizen, input, nil)

		require.NoError(t, err)
		assert.NotNil(t, got.Images)
		f.issues.AssertExpectations(t)
	})

	t.Run("Failed upload aborts and removes uploaded siblings", func(t *testing.T) {
		f := newFixture()
		f.gateway.On("Upload", mock.Anything, byName("a.jpg")).Return("uploads/1-a.jpg", nil).Once()
		f.gateway.On("Upload", mock.Anything, byName("b.jpg")).Return("", errors.New("bucket unreachable")).Once()
		f.gateway.On("Delete", mock.Anything, "uploads/1-a.jpg").Return(nil).Once()

		_, err := f.svc.Create(context.Background(), citizen, input, []domain.Upload{upload("a.jpg"), upload("b.jpg")})

		require.Error(t, err)
		assert.Zero(t, f.tx.Calls)
		f.analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
		f.gateway.AssertExpectations(t)
	})

	t.Run("Failed transaction removes uploaded objects", func(t *testing.T) {
		f := newFixture()
		f.gateway.On("Upload", mock.Anything, byName("a.jpg")).Return("uploads/1-a.jpg", nil).Once()
		f.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).Return(domain.DefaultAnalysis()).Once()
		f.issues.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.images.On("Create", mock.Anything, mock.Anything).Return(errors.New("constraint violation")).Once()
		f.gateway.On("Delete", mock.Anything, "uploads/1-a.jpg").Return(nil).Once()

		_, err := f.svc.Create(context.Background(), citizen, input, []domain.Upload{upload("a.jpg")})

		require.Error(t, err)
		f.gateway.AssertExpectations(t)
		f.issues.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Missing coordinates", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Create(context.Background(), citizen, domain.CreateIssueInput{Title: "Pothole", Description: "deep"}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestIssueService_Nearby(t *testing.T) {
	f := newFixture()
	near := domain.Issue{ID: uuid.New(), Latitude: 0.01, Longitude: 0}
	mid := domain.Issue{ID: uuid.New(), Latitude: 0.03, Longitude: 0}
	corner := domain.Issue{ID: uuid.New(), Latitude: 0.04, Longitude: 0.04}

	f.issues.On("ListInBox", mock.Anything, mock.Anything).Return([]domain.Issue{mid, corner, near}, nil).Once()
	f.images.On("ListByIssues", mock.Anything, []uuid.UUID{near.ID, mid.ID}).Return([]domain.Image{}, nil).Once()
	f.votes.On("SummariesByIssue", mock.Anything, []uuid.UUID{near.ID, mid.ID}, (*uuid.UUID)(nil)).Return(map[uuid.UUID]domain.VoteSummary{
		mid.ID: {Upvotes: 4},
	}, nil).Once()

	result, err := f.svc.Nearby(context.Background(), domain.NearbyQuery{Latitude: 0, Longitude: 0})

	require.NoError(t, err)
	assert.Equal(t, issue.DefaultRadiusKm, result.Query.RadiusKm)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, near.ID, result.Issues[0].ID)
	assert.Equal(t, mid.ID, result.Issues[1].ID)
	assert.InDelta(t, 1.11, *result.Issues[0].Distance, 0.01)
	assert.Less(t, *result.Issues[1].Distance, 5.0)
	assert.Equal(t, int64(4), result.Issues[1].Votes.Upvotes)
}

func TestIssueService_NearbyExcludesOutsideRadius(t *testing.T) {
	f := newFixture()
	// 0.09 degrees of latitude is just over 10 km.
	far := domain.Issue{ID: uuid.New(), Latitude: 0.0900, Longitude: 0}

	f.issues.On("ListInBox", mock.Anything, mock.Anything).Return([]domain.Issue{far}, nil).Once()

	result, err := f.svc.Nearby(context.Background(), domain.NearbyQuery{Latitude: 0, Longitude: 0, RadiusKm: 10})

	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	f.images.AssertNotCalled(t, "ListByIssues", mock.Anything, mock.Anything)
}

func TestIssueService_UpdateStatus(t *testing.T) {
	authorID := uuid.New()
	email := "citizen@example.com"
	name := "Sari"
	staff := &domain.User{ID: uuid.New(), Role: domain.RoleGovernment}

	t.Run("Citizen is forbidden", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateStatus(context.Background(), uuid.New(), &domain.User{ID: authorID, Role: domain.RoleCitizen}, domain.UpdateStatusInput{Status: domain.StatusClosed})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Zero(t, f.tx.Calls)
	})

	t.Run("Unknown status", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateStatus(context.Background(), uuid.New(), staff, domain.UpdateStatusInput{Status: "DONE"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Writes history and notification, then emails", func(t *testing.T) {
		f := newFixture()
		stored := &domain.Issue{ID: uuid.New(), Title: "Flooded underpass", AuthorID: authorID, Status: domain.StatusPending}
		f.expectGet(stored)

		f.issues.On("UpdateStatus", mock.Anything, stored.ID, domain.StatusOngoing).Return(nil).Once()
		f.history.On("Create", mock.Anything, mock.MatchedBy(func(h *domain.StatusHistory) bool {
			return h.Status == domain.StatusOngoing && h.ChangedByID == staff.ID && h.IssueID == stored.ID
		})).Return(nil).Once()
		f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == authorID && *n.IssueID == stored.ID && strings.Contains(n.Message, "ONGOING")
		})).Return(nil).Once()
		f.users.On("GetByID", mock.Anything, authorID).Return(&domain.User{ID: authorID, Email: &email, Name: &name}, nil).Once()
		f.email.On("SendStatusUpdateEmail", mock.Anything, email, name, "Flooded underpass", domain.StatusOngoing).Return(errors.New("resend down")).Once()

		got, err := f.svc.UpdateStatus(context.Background(), stored.ID, staff, domain.UpdateStatusInput{Status: domain.StatusOngoing})

		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
		assert.Equal(t, 1, f.tx.Calls)
		f.history.AssertExpectations(t)
		f.notifications.AssertExpectations(t)
		f.email.AssertExpectations(t)
	})

	t.Run("Failed notification rolls back and sends no email", func(t *testing.T) {
		f := newFixture()
		stored := &domain.Issue{ID: uuid.New(), AuthorID: authorID}
		f.issues.On("GetByID", mock.Anything, stored.ID).Return(stored, nil).Once()
		f.issues.On("UpdateStatus", mock.Anything, stored.ID, domain.StatusClosed).Return(nil).Once()
		f.history.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.notifications.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

		_, err := f.svc.UpdateStatus(context.Background(), stored.ID, staff, domain.UpdateStatusInput{Status: domain.StatusClosed})

		require.Error(t, err)
		f.email.AssertNotCalled(t, "SendStatusUpdateEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestIssueService_AssignDepartment(t *testing.T) {
	staff := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("Unknown department", func(t *testing.T) {
		f := newFixture()
		deptID := uuid.New()
		f.departments.On("GetByID", mock.Anything, deptID).Return(nil, nil).Once()

		_, err := f.svc.AssignDepartment(context.Background(), uuid.New(), staff, domain.AssignDepartmentInput{DepartmentID: &deptID})

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, f.tx.Calls)
	})

	t.Run("Clearing sends nothing", func(t *testing.T) {
		f := newFixture()
		stored := &domain.Issue{ID: uuid.New(), AuthorID: uuid.New()}
		f.expectGet(stored)
		f.issues.On("SetDepartment", mock.Anything, stored.ID, (*uuid.UUID)(nil)).Return(nil).Once()

		_, err := f.svc.AssignDepartment(context.Background(), stored.ID, staff, domain.AssignDepartmentInput{})

		require.NoError(t, err)
		f.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.email.AssertNotCalled(t, "SendDepartmentAssignedEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Assigning notifies the author", func(t *testing.T) {
		f := newFixture()
		deptID := uuid.New()
		stored := &domain.Issue{ID: uuid.New(), Title: "Leak", AuthorID: uuid.New()}
		f.expectGet(stored)
		f.departments.On("GetByID", mock.Anything, deptID).Return(&domain.Department{ID: deptID, Name: "Water"}, nil).Once()
		f.issues.On("SetDepartment", mock.Anything, stored.ID, &deptID).Return(nil).Once()
		f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == stored.AuthorID
		})).Return(nil).Once()
		f.users.On("GetByID", mock.Anything, stored.AuthorID).Return(&domain.User{ID: stored.AuthorID}, nil).Once()

		_, err := f.svc.AssignDepartment(context.Background(), stored.ID, staff, domain.AssignDepartmentInput{DepartmentID: &deptID})

		require.NoError(t, err)
		f.notifications.AssertExpectations(t)
		f.email.AssertNotCalled(t, "SendDepartmentAssignedEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestIssueService_Delete(t *testing.T) {
	authorID := uuid.New()

	t.Run("Cascade runs in dependency order", func(t *testing.T) {
		f := newFixture()
		stored := &domain.Issue{ID: uuid.New(), AuthorID: authorID}
		threadIDs := []uuid.UUID{uuid.New(), uuid.New()}
		var order []string
		record := func(step string) func(mock.Arguments) {
			return func(mock.Arguments) { order = append(order, step) }
		}

		f.issues.On("GetByID", mock.Anything, stored.ID).Return(stored, nil).Once()
		f.images.On("ListByIssue", mock.Anything, stored.ID).Return([]domain.Image{{URL: "uploads/a.jpg"}, {URL: "uploads/b.jpg"}}, nil).Once()
		f.comments.On("ThreadIDs", mock.Anything, stored.ID).Return(threadIDs, nil).Once()
		f.votes.On("DeleteByComments", mock.Anything, threadIDs).Run(record("comment votes")).Return(nil).Once()
		f.votes.On("DeleteByIssue", mock.Anything, stored.ID).Run(record("issue votes")).Return(nil).Once()
		f.comments.On("DeleteMany", mock.Anything, threadIDs).Run(record("comments")).Return(nil).Once()
		f.images.On("DeleteByIssue", mock.Anything, stored.ID).Run(record("images")).Return(nil).Once()
		f.history.On("DeleteByIssue", mock.Anything, stored.ID).Run(record("history")).Return(nil).Once()
		f.notifications.On("DeleteByIssue", mock.Anything, stored.ID).Run(record("notifications")).Return(nil).Once()
		f.issues.On("Delete", mock.Anything, stored.ID).Run(record("issue")).Return(nil).Once()
		f.gateway.On("Delete", mock.Anything, "uploads/a.jpg").Run(record("object")).Return(nil).Once()
		f.gateway.On("Delete", mock.Anything, "uploads/b.jpg").Run(record("object")).Return(nil).Once()

		err := f.svc.Delete(context.Background(), stored.ID, &domain.User{ID: authorID, Role: domain.RoleCitizen})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"comment votes", "issue votes", "comments", "images", "history", "notifications", "issue", "object", "object",
		}, order)
	})

	t.Run("Failed cascade keeps stored objects", func(t *testing.T) {
		f := newFixture()
		stored := &domain.Issue{ID: uuid.New(), AuthorID: authorID}
		f.issues.On("GetByID", mock.Anything, stored.ID).Return(stored, nil).Once()
		f.images.On("ListByIssue", mock.Anything, stored.ID).Return([]domain.Image{{URL: "uploads/a.jpg"}}, nil).Once()
		f.comments.On("ThreadIDs", mock.Anything, stored.ID).Return([]uuid.UUID{}, nil).Once()
		f.votes.On("DeleteByIssue", mock.Anything, stored.ID).Return(errors.New("deadlock")).Once()

		err := f.svc.Delete(context.Background(), stored.ID, &domain.User{ID: authorID})

		require.Error(t, err)
		f.gateway.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Government user who is not the author is forbidden", func(t *testing.T) {
		f := newFixture()
		stored := &domain.Issue{ID: uuid.New(), AuthorID: authorID}
		f.issues.On("GetByID", mock.Anything, stored.ID).Return(stored, nil).Once()

		err := f.svc.Delete(context.Background(), stored.ID, &domain.User{ID: uuid.New(), Role: domain.RoleGovernment})

		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Zero(t, f.tx.Calls)
	})
}

func TestIssueService_Update(t *testing.T) {
	authorID := uuid.New()

	t.Run("Severity out of range", func(t *testing.T) {
		f := newFixture()
		stored := &domain.Issue{ID: uuid.New(), AuthorID: authorID}
		f.issues.On("GetByID", mock.Anything, stored.ID).Return(stored, nil).Once()
		severity := 11

		_, err := f.svc.Update(context.Background(), stored.ID, &domain.User{ID: authorID}, domain.UpdateIssueInput{Severity: &severity}, nil)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Stranger is forbidden", func(t *testing.T) {
		f := newFixture()
		stored := &domain.Issue{ID: uuid.New(), AuthorID: authorID}
		f.issues.On("GetByID", mock.Anything, stored.ID).Return(stored, nil).Once()

		_, err := f.svc.Update(context.Background(), stored.ID, &domain.User{ID: uuid.New(), Role: domain.RoleCitizen}, domain.UpdateIssueInput{}, nil)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Replacing images removes old objects after commit", func(t *testing.T) {
		f := newFixture()
		stored := &domain.Issue{ID: uuid.New(), Title: "Old", Description: "d", AuthorID: authorID}
		f.issues.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)
		title := "New title"

		f.gateway.On("Upload", mock.Anything, byName("c.jpg")).Return("uploads/3-c.jpg", nil).Once()
		f.issues.On("Update", mock.Anything, mock.MatchedBy(func(i *domain.Issue) bool { return i.Title == "New title" })).Return(nil).Once()
		f.images.On("ListByIssue", mock.Anything, stored.ID).Return([]domain.Image{{URL: "uploads/old.jpg"}}, nil).Once()
		f.images.On("DeleteByIssue", mock.Anything, stored.ID).Return(nil).Once()
		f.images.On("Create", mock.Anything, mock.MatchedBy(func(img *domain.Image) bool { return img.URL == "uploads/3-c.jpg" })).Return(nil).Once()
		f.gateway.On("Delete", mock.Anything, "uploads/old.jpg").Return(nil).Once()
		f.images.On("ListByIssue", mock.Anything, stored.ID).Return([]domain.Image{{URL: "uploads/3-c.jpg"}}, nil).Once()
		f.gateway.On("SignedURL", mock.Anything, "uploads/3-c.jpg", storage.SignedURLExpiry).Return("https://signed/c", nil).Once()

		got, err := f.svc.Update(context.Background(), stored.ID, &domain.User{ID: authorID},
			domain.UpdateIssueInput{Title: &title, ReplaceImages: true}, []domain.Upload{upload("c.jpg")})

		require.NoError(t, err)
		assert.Equal(t, "https://signed/c", got.Images[0].URL)
		f.gateway.AssertExpectations(t)
	})
}

func TestIssueService_ListAssigned(t *testing.T) {
	t.Run("No department", func(t *testing.T) {
		f := newFixture()
		page, err := f.svc.ListAssigned(context.Background(), &domain.User{ID: uuid.New(), Role: domain.RoleGovernment}, nil, domain.PaginationParams{})

		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.NotEmpty(t, page.Message)
		f.issues.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Filters by the actor's department", func(t *testing.T) {
		f := newFixture()
		deptID := uuid.New()
		status := domain.StatusOngoing
		actor := &domain.User{ID: uuid.New(), Role: domain.RoleGovernment, DepartmentID: &deptID}

		f.issues.On("List", mock.Anything, domain.IssueFilter{Status: &status, DepartmentID: &deptID}, domain.PaginationParams{Page: 1, PageSize: 10}).
			Return([]domain.Issue{}, int64(0), nil).Once()

		page, err := f.svc.ListAssigned(context.Background(), actor, &status, domain.PaginationParams{})

		require.NoError(t, err)
		assert.Empty(t, page.Message)
		f.issues.AssertExpectations(t)
	})
}
