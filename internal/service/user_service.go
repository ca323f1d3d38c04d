package service

import (
	"context"
	"strings"

	"friendflow/internal/models"
	"friendflow/internal/repository"
	"friendflow/internal/validation"
)

// UserService serves profiles and presence-aware profile updates.
type UserService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

// UpdateProfileInput carries a presence-aware patch. nil leaves a
// field untouched; a non-nil pointer sets it, an empty string clears.
type UpdateProfileInput struct {
	UserID       uint
	Bio          *string
	ProfileImage *string
}

// Profile bundles a user with their recent posts for the public
// profile page.
type Profile struct {
	User  *models.User   `json:"user"`
	Posts []*models.Post `json:"posts"`
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
	}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.fillFollowSets(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile returns the named user together with their posts, newest
// first.
func (s *UserService) GetProfile(ctx context.Context, username string, postLimit, postOffset int, currentUserID uint) (*Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundMessageError("User not found")
	}

	if err := s.fillFollowSets(ctx, user); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetByUserID(ctx, user.ID, postLimit, postOffset, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &Profile{User: user, Posts: posts}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if err := validation.ValidateBio(bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = bio
	}
	if in.ProfileImage != nil {
		// An explicit empty string clears the image.
		user.ProfileImage = strings.TrimSpace(*in.ProfileImage)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.fillFollowSets(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) fillFollowSets(ctx context.Context, user *models.User) error {
	followers, err := s.followRepo.FollowerIDs(ctx, user.ID)
	if err != nil {
		return err
	}
	following, err := s.followRepo.FollowingIDs(ctx, user.ID)
	if err != nil {
		return err
	}
	if followers == nil {
		followers = []uint{}
	}
	if following == nil {
		following = []uint{}
	}
	user.Followers = followers
	user.Following = following
	return nil
}
