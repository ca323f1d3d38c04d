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
	"gorm.io/gorm"
)

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	comment.ID = 1
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func newCommentTestApp(comments *MockCommentRepository, posts *MockPostRepository) (*fiber.App, *Server) {
	app := fiber.New()
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, mock.Anything).
		Return(&models.User{ID: 1, Username: "author"}, nil).Maybe()
	s := &Server{commentRepo: comments, postRepo: posts, userRepo: users}
	postService := service.NewPostService(posts, users, nil)
	s.commentService = service.NewCommentService(comments, postService, nil)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	return app, s
}

func TestCreateComment(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(comments *MockCommentRepository, posts *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"text": "nice post"},
			mockSetup: func(comments *MockCommentRepository, posts *MockPostRepository) {
				posts.On("GetByID", mock.Anything, uint(2), uint(0)).
					Return(&models.Post{ID: 2, UserID: 3, Title: "t", Description: "d"}, nil)
				comments.On("Create", mock.Anything, mock.Anything).Return(nil)
				comments.On("GetByID", mock.Anything, uint(1)).
					Return(&models.Comment{ID: 1, Text: "nice post", PostID: 2, UserID: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Empty Text",
			body: map[string]string{"text": "   "},
			mockSetup: func(comments *MockCommentRepository, posts *MockPostRepository) {
				posts.On("GetByID", mock.Anything, uint(2), uint(0)).
					Return(&models.Post{ID: 2, UserID: 3, Title: "t", Description: "d"}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Post Not Found",
			body: map[string]string{"text": "hello"},
			mockSetup: func(comments *MockCommentRepository, posts *MockPostRepository) {
				posts.On("GetByID", mock.Anything, uint(2), uint(0)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := new(MockCommentRepository)
			posts := new(MockPostRepository)
			tt.mockSetup(comments, posts)
			app, s := newCommentTestApp(comments, posts)
			app.Post("/posts/:id/comment", s.CreateComment)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts/2/comment", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetCommentsEmpty(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	posts.On("GetByID", mock.Anything, uint(2), uint(0)).
		Return(&models.Post{ID: 2, UserID: 3, Title: "t", Description: "d"}, nil)
	comments.On("ListByPost", mock.Anything, uint(2)).Return([]*models.Comment{}, nil)

	app, s := newCommentTestApp(comments, posts)
	app.Get("/posts/:id/comments", s.GetComments)

	req := httptest.NewRequest(http.MethodGet, "/posts/2/comments", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
