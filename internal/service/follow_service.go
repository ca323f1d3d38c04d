package service

import (
	"context"

	"friendflow/internal/models"
	"friendflow/internal/observability"
	"friendflow/internal/repository"
)

// FollowService manages the directed follow graph. The single edge
// row keeps the follower and followee views of the relationship in
// lockstep.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	events     FeedEventPublisher
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	events FeedEventPublisher,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		events:     events,
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewConflictError("Already following this user")
	}

	// The unique edge index resolves the check-then-create race: a
	// concurrent duplicate surfaces as a conflict from the repository.
	if err := s.followRepo.Create(ctx, &models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}); err != nil {
		return err
	}

	observability.RecordInteraction("user_followed")
	publish(ctx, s.events, EventUserFollowed, map[string]any{
		"follower_id": followerID,
		"followee_id": followeeID,
	})
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	rows, err := s.followRepo.Delete(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewConflictError("Not following this user")
	}

	observability.RecordInteraction("user_unfollowed")
	publish(ctx, s.events, EventUserUnfollowed, map[string]any{
		"follower_id": followerID,
		"followee_id": followeeID,
	})
	return nil
}

// FollowSets returns the user's follower and following ID sets.
func (s *FollowService) FollowSets(ctx context.Context, userID uint) (followers, following []uint, err error) {
	followers, err = s.followRepo.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	following, err = s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if followers == nil {
		followers = []uint{}
	}
	if following == nil {
		following = []uint{}
	}
	return followers, following, nil
}
