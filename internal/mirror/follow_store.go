package mirror

import (
	"context"

	"friendflow/internal/models"
)

type followStore struct {
	s *Store
}

func (r *followStore) Create(_ context.Context, follow *models.Follow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Mirrors the unique (follower_id, followee_id) index.
	for _, f := range r.s.follows {
		if f.FollowerID == follow.FollowerID && f.FolloweeID == follow.FolloweeID {
			return models.NewConflictError("Already following this user")
		}
	}

	r.s.nextFollowID++
	follow.ID = r.s.nextFollowID
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = now()
	}

	stored := *follow
	r.s.follows[follow.ID] = &stored
	return nil
}

func (r *followStore) Exists(_ context.Context, followerID, followeeID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FolloweeID == followeeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *followStore) Delete(_ context.Context, followerID, followeeID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows int64
	for id, f := range r.s.follows {
		if f.FollowerID == followerID && f.FolloweeID == followeeID {
			delete(r.s.follows, id)
			rows++
		}
	}
	return rows, nil
}

func (r *followStore) FollowerIDs(_ context.Context, userID uint) ([]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ids []uint
	for _, id := range sortedIDs(r.s.follows) {
		if r.s.follows[id].FolloweeID == userID {
			ids = append(ids, r.s.follows[id].FollowerID)
		}
	}
	return ids, nil
}

func (r *followStore) FollowingIDs(_ context.Context, userID uint) ([]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ids []uint
	for _, id := range sortedIDs(r.s.follows) {
		if r.s.follows[id].FollowerID == userID {
			ids = append(ids, r.s.follows[id].FolloweeID)
		}
	}
	return ids, nil
}
