package mirror

import (
	"context"

	"friendflow/internal/models"

	"gorm.io/gorm"
)

type commentStore struct {
	s *Store
}

func (r *commentStore) Create(_ context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextCommentID++
	comment.ID = r.s.nextCommentID
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now()
	}

	stored := *comment
	r.s.comments[comment.ID] = &stored
	return nil
}

func (r *commentStore) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment, ok := r.s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.s.cloneComment(comment), nil
}

func (r *commentStore) ListByPost(_ context.Context, postID uint) ([]*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var comments []*models.Comment
	for _, id := range sortedIDs(r.s.comments) {
		if r.s.comments[id].PostID == postID {
			comments = append(comments, r.s.cloneComment(r.s.comments[id]))
		}
	}
	return comments, nil
}
