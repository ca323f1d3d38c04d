// Package mirror is an in-memory implementation of the repository
// interfaces. It mirrors the relational store's observable behavior so
// the same services (and their property tests) run unchanged against
// either backend, the way a client-side state mirror would.
package mirror

import (
	"sort"
	"sync"
	"time"

	"friendflow/internal/models"
	"friendflow/internal/repository"
)

// Store holds all mirrored state behind one mutex. IDs are assigned
// from per-table sequences, matching insertion order semantics.
type Store struct {
	mu sync.Mutex

	users    map[uint]*models.User
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	likes    map[uint]*models.Like
	follows  map[uint]*models.Follow

	nextUserID    uint
	nextPostID    uint
	nextCommentID uint
	nextLikeID    uint
	nextFollowID  uint
}

// NewStore returns an empty mirror store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uint]*models.User),
		posts:    make(map[uint]*models.Post),
		comments: make(map[uint]*models.Comment),
		likes:    make(map[uint]*models.Like),
		follows:  make(map[uint]*models.Follow),
	}
}

// Posts returns the mirror-backed post repository.
func (s *Store) Posts() repository.PostRepository {
	return &postStore{s}
}

// Comments returns the mirror-backed comment repository.
func (s *Store) Comments() repository.CommentRepository {
	return &commentStore{s}
}

// Users returns the mirror-backed user repository.
func (s *Store) Users() repository.UserRepository {
	return &userStore{s}
}

// Follows returns the mirror-backed follow repository.
func (s *Store) Follows() repository.FollowRepository {
	return &followStore{s}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Posts = nil
	return &c
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func (s *Store) clonePost(p *models.Post, currentUserID uint) *models.Post {
	c := *p
	c.Tags = cloneTags(p.Tags)
	c.LikesCount = 0
	c.CommentsCount = 0
	c.Liked = false
	for _, l := range s.likes {
		if l.PostID != p.ID {
			continue
		}
		c.LikesCount++
		if l.UserID == currentUserID {
			c.Liked = true
		}
	}
	for _, cm := range s.comments {
		if cm.PostID == p.ID {
			c.CommentsCount++
		}
	}
	if owner, ok := s.users[p.UserID]; ok {
		c.User = *cloneUser(owner)
	}
	return &c
}

func (s *Store) cloneComment(cm *models.Comment) *models.Comment {
	c := *cm
	if author, ok := s.users[cm.UserID]; ok {
		c.User = *cloneUser(author)
	}
	return &c
}

func now() time.Time {
	return time.Now()
}

// sortedIDs returns map keys in ascending order, the mirror's stand-in
// for insertion order.
func sortedIDs[T any](m map[uint]T) []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
