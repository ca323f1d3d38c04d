package mirror

import (
	"context"
	"sort"

	"friendflow/internal/models"

	"gorm.io/gorm"
)

type postStore struct {
	s *Store
}

func (r *postStore) Create(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextPostID++
	post.ID = r.s.nextPostID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now()
	}
	post.UpdatedAt = post.CreatedAt

	stored := *post
	stored.Tags = cloneTags(post.Tags)
	r.s.posts[post.ID] = &stored
	return nil
}

func (r *postStore) GetByID(_ context.Context, id uint, currentUserID uint) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	post, ok := r.s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.s.clonePost(post, currentUserID), nil
}

func (r *postStore) GetByUserID(_ context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var posts []*models.Post
	for _, id := range sortedIDs(r.s.posts) {
		if r.s.posts[id].UserID == userID {
			posts = append(posts, r.s.clonePost(r.s.posts[id], currentUserID))
		}
	}
	return paginateNewestFirst(posts, limit, offset), nil
}

func (r *postStore) List(_ context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var posts []*models.Post
	for _, id := range sortedIDs(r.s.posts) {
		posts = append(posts, r.s.clonePost(r.s.posts[id], currentUserID))
	}
	return paginateNewestFirst(posts, limit, offset), nil
}

func (r *postStore) Update(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[post.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Title = post.Title
	stored.Description = post.Description
	stored.ImageURL = post.ImageURL
	stored.Tags = cloneTags(post.Tags)
	stored.UpdatedAt = now()
	return nil
}

func (r *postStore) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	for lid, l := range r.s.likes {
		if l.PostID == id {
			delete(r.s.likes, lid)
		}
	}
	return nil
}

func (r *postStore) IsLiked(_ context.Context, userID, postID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.likes {
		if l.UserID == userID && l.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (r *postStore) Like(_ context.Context, userID, postID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Mirrors ON CONFLICT DO NOTHING on the (user_id, post_id) index.
	for _, l := range r.s.likes {
		if l.UserID == userID && l.PostID == postID {
			return nil
		}
	}
	r.s.nextLikeID++
	r.s.likes[r.s.nextLikeID] = &models.Like{
		ID:        r.s.nextLikeID,
		UserID:    userID,
		PostID:    postID,
		CreatedAt: now(),
	}
	return nil
}

func (r *postStore) Unlike(_ context.Context, userID, postID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, l := range r.s.likes {
		if l.UserID == userID && l.PostID == postID {
			delete(r.s.likes, id)
		}
	}
	return nil
}

func (r *postStore) LikerIDs(_ context.Context, postID uint) ([]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ids []uint
	for _, likeID := range sortedIDs(r.s.likes) {
		if r.s.likes[likeID].PostID == postID {
			ids = append(ids, r.s.likes[likeID].UserID)
		}
	}
	return ids, nil
}

// paginateNewestFirst orders by created_at descending with id as the
// tie-break, then applies limit/offset.
func paginateNewestFirst(posts []*models.Post, limit, offset int) []*models.Post {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	if offset >= len(posts) {
		return nil
	}
	posts = posts[offset:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}
