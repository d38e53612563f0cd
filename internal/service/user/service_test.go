package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"public-pulse/internal/domain"
	"public-pulse/internal/mocks"
	"public-pulse/internal/repository"
	"public-pulse/internal/service/user"
)

type fixture struct {
	users         *mocks.UserRepository
	departments   *mocks.DepartmentRepository
	votes         *mocks.VoteRepository
	notifications *mocks.NotificationRepository
	tx            *mocks.Transactor
	svc           user.Service
}

func newFixture() *fixture {
	f := &fixture{
		users:         new(mocks.UserRepository),
		departments:   new(mocks.DepartmentRepository),
		votes:         new(mocks.VoteRepository),
		notifications: new(mocks.NotificationRepository),
	}
	f.tx = &mocks.Transactor{Repos: &repository.Repositories{
		User:         f.users,
		Vote:         f.votes,
		Notification: f.notifications,
	}}
	f.svc = user.NewService(f.tx, f.users, f.departments)
	return f
}

func ptr[T any](v T) *T { return &v }

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	self := &domain.User{ID: uuid.New(), Role: domain.RoleCitizen}
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("Self edits profile", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, self.ID).Return(&domain.User{ID: self.ID, Role: domain.RoleCitizen}, nil).Once()
		f.users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool { return *u.Name == "Dewi" })).Return(nil).Once()

		got, err := f.svc.Update(ctx, self.ID, self, domain.UpdateUserInput{Name: ptr("Dewi")})

		require.NoError(t, err)
		assert.Equal(t, "Dewi", *got.Name)
	})

	t.Run("Editing someone else is forbidden", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Update(ctx, uuid.New(), self, domain.UpdateUserInput{Name: ptr("x")})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Citizen cannot change own role", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Update(ctx, self.ID, self, domain.UpdateUserInput{Role: ptr(domain.RoleAdmin)})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Admin clears department with explicit null", func(t *testing.T) {
		f := newFixture()
		deptID := uuid.New()
		targetID := uuid.New()
		f.users.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID, Role: domain.RoleGovernment, DepartmentID: &deptID}, nil).Once()
		f.users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool { return u.DepartmentID == nil })).Return(nil).Once()

		var input domain.UpdateUserInput
		require.NoError(t, input.DepartmentID.UnmarshalJSON([]byte("null")))

		got, err := f.svc.Update(ctx, targetID, admin, input)

		require.NoError(t, err)
		assert.Nil(t, got.DepartmentID)
	})

	t.Run("Last admin cannot be demoted", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, admin.ID).Return(&domain.User{ID: admin.ID, Role: domain.RoleAdmin}, nil).Once()
		f.users.On("CountByRole", ctx, domain.RoleAdmin).Return(int64(1), nil).Once()

		_, err := f.svc.Update(ctx, admin.ID, admin, domain.UpdateUserInput{Role: ptr(domain.RoleCitizen)})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("Removes votes and notifications then anonymises", func(t *testing.T) {
		f := newFixture()
		targetID := uuid.New()
		var order []string
		f.users.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID, Role: domain.RoleCitizen}, nil).Once()
		f.votes.On("DeleteByUser", ctx, targetID).Run(func(mock.Arguments) { order = append(order, "votes") }).Return(nil).Once()
		f.notifications.On("DeleteByUser", ctx, targetID).Run(func(mock.Arguments) { order = append(order, "notifications") }).Return(nil).Once()
		f.users.On("Anonymize", ctx, targetID).Run(func(mock.Arguments) { order = append(order, "user") }).Return(nil).Once()

		require.NoError(t, f.svc.Delete(ctx, targetID, admin))
		assert.Equal(t, []string{"votes", "notifications", "user"}, order)
		assert.Equal(t, 1, f.tx.Calls)
	})

	t.Run("Last admin", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, admin.ID).Return(&domain.User{ID: admin.ID, Role: domain.RoleAdmin}, nil).Once()
		f.users.On("CountByRole", ctx, domain.RoleAdmin).Return(int64(1), nil).Once()

		err := f.svc.Delete(ctx, admin.ID, admin)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, f.tx.Calls)
	})

	t.Run("Non-admin", func(t *testing.T) {
		f := newFixture()
		err := f.svc.Delete(ctx, uuid.New(), &domain.User{ID: uuid.New(), Role: domain.RoleGovernment})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Duplicate external id", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByExternalID", ctx, "ext-1").Return(&domain.User{ID: uuid.New()}, nil).Once()

		_, err := f.svc.Create(ctx, domain.CreateUserInput{ExternalID: "ext-1", Name: "A", Email: "a@example.com", Role: domain.RoleCitizen})

		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Government with department", func(t *testing.T) {
		f := newFixture()
		deptID := uuid.New()
		f.users.On("GetByExternalID", ctx, "ext-2").Return(nil, nil).Once()
		f.departments.On("GetByID", ctx, deptID).Return(&domain.Department{ID: deptID, Name: "Parks"}, nil).Once()
		f.users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		got, err := f.svc.Create(ctx, domain.CreateUserInput{ExternalID: "ext-2", Name: "B", Email: "b@example.com", Role: domain.RoleGovernment, DepartmentID: &deptID})

		require.NoError(t, err)
		assert.Equal(t, "Parks", got.Department.Name)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	role := domain.RoleGovernment
	filter := domain.UserFilter{Role: &role, Search: "budi"}
	f.users.On("List", ctx, filter, domain.PaginationParams{Page: 2, PageSize: 5}).Return([]domain.User{{ID: uuid.New()}}, int64(6), nil).Once()

	page, err := f.svc.List(ctx, domain.UserFilter{Role: &role, Search: "  budi "}, domain.PaginationParams{Page: 2, PageSize: 5})

	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNext)

	bad := domain.UserRole("ROOT")
	_, err = f.svc.List(ctx, domain.UserFilter{Role: &bad}, domain.PaginationParams{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
