package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"friendflow/internal/cache"
	"friendflow/internal/models"
	"friendflow/internal/observability"
	"friendflow/internal/repository"

	"gorm.io/gorm"
)

// PostService owns the post lifecycle and the like toggle. All
// validation and ownership rules live here; repositories stay dumb.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	events   FeedEventPublisher
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
	ImageURL    string
	Tags        []string
}

// UpdatePostInput carries a presence-aware patch. nil means the field
// was absent from the request and stays untouched; a non-nil pointer
// sets the field, including setting it to its zero value.
type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       *string
	Description *string
	ImageURL    *string
	Tags        *[]string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, events FeedEventPublisher) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		events:   events,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if title == "" || description == "" {
		return nil, models.NewValidationError("Title and description are required")
	}
	if utf8.RuneCountInString(title) > models.MaxPostTitleLength {
		return nil, models.NewValidationError("Title too long (max 100 characters)")
	}
	if utf8.RuneCountInString(description) > models.MaxPostDescriptionLength {
		return nil, models.NewValidationError("Description too long (max 2000 characters)")
	}

	// The author must resolve before anything is committed; an orphan
	// post would otherwise slip through on backends without FK checks.
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       title,
		Description: description,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Tags:        normalizeTags(in.Tags),
		UserID:      in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.RecordInteraction("post_created")
	publish(ctx, s.events, EventPostCreated, post)

	return s.fetchPost(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.fetchPost(ctx, id, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	var posts []*models.Post

	// Anonymous feed slices are cache-aside, keyed by the exact
	// (limit, offset) window; the cached liked column is false for
	// everyone. Authenticated reads hit the DB so the liked flag is
	// per-user.
	if in.CurrentUserID == 0 {
		key := cache.VersionedFeedSliceKey(ctx, in.Limit, in.Offset)
		err := cache.Aside(ctx, key, &posts, cache.FeedTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, in.Limit, in.Offset, 0)
			return fetchErr
		})
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		return posts, nil
	}

	posts, err := s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.fetchPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("Not authorized to update this post")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if utf8.RuneCountInString(title) > models.MaxPostTitleLength {
			return nil, models.NewValidationError("Title too long (max 100 characters)")
		}
		post.Title = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, models.NewValidationError("Description is required")
		}
		if utf8.RuneCountInString(description) > models.MaxPostDescriptionLength {
			return nil, models.NewValidationError("Description too long (max 2000 characters)")
		}
		post.Description = description
	}
	if in.ImageURL != nil {
		// An explicit empty string clears the image.
		post.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Tags != nil {
		post.Tags = normalizeTags(*in.Tags)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.RecordInteraction("post_updated")
	publish(ctx, s.events, EventPostUpdated, post)

	return s.fetchPost(ctx, in.PostID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.fetchPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		return models.NewForbiddenError("Not authorized to delete this post")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return models.NewInternalError(err)
	}

	observability.RecordInteraction("post_deleted")
	publish(ctx, s.events, EventPostDeleted, post)
	return nil
}

// ToggleLike flips the caller's like on the post and returns the
// resulting like set in insertion order. Toggling twice restores the
// original state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) ([]uint, error) {
	if _, err := s.fetchPost(ctx, postID, userID); err != nil {
		return nil, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if isLiked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, models.NewInternalError(err)
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	likes, err := s.postRepo.LikerIDs(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if likes == nil {
		likes = []uint{}
	}

	observability.RecordInteraction("like_toggled")
	publish(ctx, s.events, EventLikeToggled, map[string]any{
		"post_id": postID,
		"user_id": userID,
		"liked":   !isLiked,
	})

	return likes, nil
}

// fetchPost loads a post and translates the driver's not-found into
// the domain error.
func (s *PostService) fetchPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessageError("Post not found")
		}
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// normalizeTags trims each tag and drops empties, preserving order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}

