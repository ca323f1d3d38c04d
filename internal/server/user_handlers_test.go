package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"friendflow/internal/models"
	"friendflow/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	user.ID = 1
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followeeID uint) (int64, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockFollowRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func newUserTestApp(userRepo *MockUserRepository, followRepo *MockFollowRepository, postRepo *MockPostRepository) (*fiber.App, *Server) {
	app := fiber.New()
	s := &Server{userRepo: userRepo, followRepo: followRepo, postRepo: postRepo}
	s.followService = service.NewFollowService(followRepo, userRepo, nil)
	s.userService = service.NewUserService(userRepo, postRepo, followRepo)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	return app, s
}

func TestFollowUser(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		mockSetup      func(users *MockUserRepository, follows *MockFollowRepository)
		expectedStatus int
	}{
		{
			name:   "Success",
			target: "2",
			mockSetup: func(users *MockUserRepository, follows *MockFollowRepository) {
				users.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
				follows.On("Exists", mock.Anything, uint(1), uint(2)).Return(false, nil)
				follows.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Self Follow",
			target:         "1",
			mockSetup:      func(*MockUserRepository, *MockFollowRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Already Following",
			target: "2",
			mockSetup: func(users *MockUserRepository, follows *MockFollowRepository) {
				users.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
				follows.On("Exists", mock.Anything, uint(1), uint(2)).Return(true, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Unknown Target",
			target: "42",
			mockSetup: func(users *MockUserRepository, follows *MockFollowRepository) {
				users.On("GetByID", mock.Anything, uint(42)).
					Return(nil, models.NewNotFoundError("User", 42))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			follows := new(MockFollowRepository)
			tt.mockSetup(users, follows)
			app, s := newUserTestApp(users, follows, new(MockPostRepository))
			app.Post("/users/follow/:id", s.FollowUser)

			req := httptest.NewRequest(http.MethodPost, "/users/follow/"+tt.target, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUnfollowUserNotFollowing(t *testing.T) {
	users := new(MockUserRepository)
	follows := new(MockFollowRepository)
	users.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
	follows.On("Delete", mock.Anything, uint(1), uint(2)).Return(int64(0), nil)

	app, s := newUserTestApp(users, follows, new(MockPostRepository))
	app.Post("/users/unfollow/:id", s.UnfollowUser)

	req := httptest.NewRequest(http.MethodPost, "/users/unfollow/2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetUserProfileNotFound(t *testing.T) {
	users := new(MockUserRepository)
	follows := new(MockFollowRepository)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	app, s := newUserTestApp(users, follows, new(MockPostRepository))
	app.Get("/users/:username", s.GetUserProfile)

	req := httptest.NewRequest(http.MethodGet, "/users/ghost", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateMyProfile(t *testing.T) {
	users := new(MockUserRepository)
	follows := new(MockFollowRepository)
	users.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "alice", Bio: "old"}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Bio == "new bio"
	})).Return(nil)
	follows.On("FollowerIDs", mock.Anything, uint(1)).Return([]uint{}, nil)
	follows.On("FollowingIDs", mock.Anything, uint(1)).Return([]uint{}, nil)

	app, s := newUserTestApp(users, follows, new(MockPostRepository))
	app.Put("/users/profile", s.UpdateMyProfile)

	body, _ := json.Marshal(map[string]string{"bio": "new bio"})
	req := httptest.NewRequest(http.MethodPut, "/users/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	users.AssertExpectations(t)
}
