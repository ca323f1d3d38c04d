package service

import (
	"context"
	"testing"

	"friendflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type followRepoStub struct {
	createFn       func(context.Context, *models.Follow) error
	existsFn       func(context.Context, uint, uint) (bool, error)
	deleteFn       func(context.Context, uint, uint) (int64, error)
	followerIDsFn  func(context.Context, uint) ([]uint, error)
	followingIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) (int64, error) {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:       func(context.Context, *models.Follow) error { return nil },
		existsFn:       func(context.Context, uint, uint) (bool, error) { return false, nil },
		deleteFn:       func(context.Context, uint, uint) (int64, error) { return 1, nil },
		followerIDsFn:  func(context.Context, uint) ([]uint, error) { return nil, nil },
		followingIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

func TestFollowServiceFollowSelf(t *testing.T) {
	t.Parallel()

	svc := NewFollowService(noopFollowRepo(), noopUserRepo(), nil)
	err := svc.Follow(context.Background(), 5, 5)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "You cannot follow yourself", appErr.Message)
}

func TestFollowServiceFollowMissingUser(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewFollowService(noopFollowRepo(), users, nil)

	err := svc.Follow(context.Background(), 1, 42)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestFollowServiceFollowDuplicate(t *testing.T) {
	t.Parallel()

	follows := noopFollowRepo()
	follows.existsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
	svc := NewFollowService(follows, noopUserRepo(), nil)

	err := svc.Follow(context.Background(), 1, 2)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, "Already following this user", appErr.Message)
}

func TestFollowServiceFollowCreatesEdge(t *testing.T) {
	t.Parallel()

	var created *models.Follow
	follows := noopFollowRepo()
	follows.createFn = func(_ context.Context, follow *models.Follow) error {
		created = follow
		return nil
	}
	svc := NewFollowService(follows, noopUserRepo(), nil)

	require.NoError(t, svc.Follow(context.Background(), 1, 2))
	require.NotNil(t, created)
	assert.Equal(t, uint(1), created.FollowerID)
	assert.Equal(t, uint(2), created.FolloweeID)
}

func TestFollowServiceUnfollowNotFollowing(t *testing.T) {
	t.Parallel()

	follows := noopFollowRepo()
	follows.deleteFn = func(context.Context, uint, uint) (int64, error) { return 0, nil }
	svc := NewFollowService(follows, noopUserRepo(), nil)

	err := svc.Unfollow(context.Background(), 1, 2)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, "Not following this user", appErr.Message)
}

func TestFollowServiceFollowSetsNeverNil(t *testing.T) {
	t.Parallel()

	svc := NewFollowService(noopFollowRepo(), noopUserRepo(), nil)
	followers, following, err := svc.FollowSets(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, followers)
	assert.NotNil(t, following)
	assert.Empty(t, followers)
	assert.Empty(t, following)
}
