package mirror

import (
	"context"

	"friendflow/internal/models"
)

type userStore struct {
	s *Store
}

func (r *userStore) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return models.NewConflictError("User already exists")
		}
	}

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now()
	}
	user.UpdatedAt = user.CreatedAt

	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r *userStore) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return cloneUser(user), nil
}

func (r *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *userStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *userStore) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[user.ID]
	if !ok {
		return models.NewNotFoundError("User", user.ID)
	}
	stored.Bio = user.Bio
	stored.ProfileImage = user.ProfileImage
	stored.UpdatedAt = now()
	return nil
}

func (r *userStore) List(_ context.Context, limit, offset int) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var users []models.User
	for _, id := range sortedIDs(r.s.users) {
		users = append(users, *cloneUser(r.s.users[id]))
	}
	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}
