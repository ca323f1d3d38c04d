package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"friendflow/internal/models"
	"friendflow/internal/observability"
	"friendflow/internal/repository"
)

// CommentService appends comments to posts. Comments are never edited
// or individually deleted; they only disappear with their post.
type CommentService struct {
	commentRepo repository.CommentRepository
	postSvc     *PostService
	events      FeedEventPublisher
}

type AddCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postSvc *PostService,
	events FeedEventPublisher,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postSvc:     postSvc,
		events:      events,
	}
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if _, err := s.postSvc.fetchPost(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if utf8.RuneCountInString(text) > models.MaxCommentLength {
		return nil, models.NewValidationError("Comment too long (max 500 characters)")
	}

	comment := &models.Comment{
		Text:   text,
		UserID: in.UserID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.RecordInteraction("comment_added")
	publish(ctx, s.events, EventCommentAdded, comment)

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return created, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postSvc.fetchPost(ctx, postID, 0); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
