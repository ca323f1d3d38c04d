package service

import (
	"context"
	"testing"

	"friendflow/internal/database"
	"friendflow/internal/mirror"
	"friendflow/internal/models"
	"friendflow/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// backend bundles one full set of repositories. The interaction rules
// must hold identically over the relational store and the in-memory
// mirror, so every scenario below runs against both.
type backend struct {
	name     string
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
}

func newBackends(t *testing.T) []backend {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	store := mirror.NewStore()

	return []backend{
		{
			name:     "sqlite",
			users:    repository.NewUserRepository(db),
			posts:    repository.NewPostRepository(db),
			comments: repository.NewCommentRepository(db),
			follows:  repository.NewFollowRepository(db),
		},
		{
			name:     "mirror",
			users:    store.Users(),
			posts:    store.Posts(),
			comments: store.Comments(),
			follows:  store.Follows(),
		},
	}
}

func seedUser(t *testing.T, users repository.UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed-password",
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestLikeToggleRoundTrip(t *testing.T) {
	t.Parallel()

	for _, b := range newBackends(t) {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			author := seedUser(t, b.users, "author")
			fan := seedUser(t, b.users, "fan")
			svc := NewPostService(b.posts, b.users, nil)

			post, err := svc.CreatePost(ctx, CreatePostInput{
				UserID:      author.ID,
				Title:       "hello",
				Description: "world",
			})
			require.NoError(t, err)

			likes, err := svc.ToggleLike(ctx, fan.ID, post.ID)
			require.NoError(t, err)
			assert.Equal(t, []uint{fan.ID}, likes)

			got, err := svc.GetPost(ctx, post.ID, fan.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, got.LikesCount)
			assert.True(t, got.Liked)

			// Toggling again restores the original state.
			likes, err = svc.ToggleLike(ctx, fan.ID, post.ID)
			require.NoError(t, err)
			assert.Empty(t, likes)

			got, err = svc.GetPost(ctx, post.ID, fan.ID)
			require.NoError(t, err)
			assert.Equal(t, 0, got.LikesCount)
			assert.False(t, got.Liked)
		})
	}
}

func TestCreatePostRequiresExistingAuthor(t *testing.T) {
	t.Parallel()

	for _, b := range newBackends(t) {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			// Neither backend enforces foreign keys, so the service has
			// to resolve the author itself before committing.
			svc := NewPostService(b.posts, b.users, nil)
			_, err := svc.CreatePost(context.Background(), CreatePostInput{
				UserID: 999, Title: "t", Description: "d",
			})
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "NOT_FOUND", appErr.Code)
		})
	}
}

func TestLikerSetInsertionOrder(t *testing.T) {
	t.Parallel()

	for _, b := range newBackends(t) {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			author := seedUser(t, b.users, "author")
			first := seedUser(t, b.users, "first")
			second := seedUser(t, b.users, "second")
			svc := NewPostService(b.posts, b.users, nil)

			post, err := svc.CreatePost(ctx, CreatePostInput{
				UserID: author.ID, Title: "t", Description: "d",
			})
			require.NoError(t, err)

			_, err = svc.ToggleLike(ctx, second.ID, post.ID)
			require.NoError(t, err)
			likes, err := svc.ToggleLike(ctx, first.ID, post.ID)
			require.NoError(t, err)

			assert.Equal(t, []uint{second.ID, first.ID}, likes)
		})
	}
}

func TestFollowSymmetry(t *testing.T) {
	t.Parallel()

	for _, b := range newBackends(t) {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			alice := seedUser(t, b.users, "alice")
			bob := seedUser(t, b.users, "bob")
			svc := NewFollowService(b.follows, b.users, nil)

			require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

			// The edge is visible from both ends.
			bobFollowers, _, err := svc.FollowSets(ctx, bob.ID)
			require.NoError(t, err)
			_, aliceFollowing, err := svc.FollowSets(ctx, alice.ID)
			require.NoError(t, err)
			assert.Equal(t, []uint{alice.ID}, bobFollowers)
			assert.Equal(t, []uint{bob.ID}, aliceFollowing)

			// Duplicate edges are rejected.
			err = svc.Follow(ctx, alice.ID, bob.ID)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "CONFLICT", appErr.Code)

			// The reverse direction is a distinct edge.
			require.NoError(t, svc.Follow(ctx, bob.ID, alice.ID))

			require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
			bobFollowers, _, err = svc.FollowSets(ctx, bob.ID)
			require.NoError(t, err)
			assert.Empty(t, bobFollowers)

			_, bobFollowing, err := svc.FollowSets(ctx, bob.ID)
			require.NoError(t, err)
			assert.Equal(t, []uint{alice.ID}, bobFollowing)

			err = svc.Unfollow(ctx, alice.ID, bob.ID)
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "CONFLICT", appErr.Code)
			assert.Equal(t, "Not following this user", appErr.Message)
		})
	}
}

func TestDeletePostCascades(t *testing.T) {
	t.Parallel()

	for _, b := range newBackends(t) {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			author := seedUser(t, b.users, "author")
			fan := seedUser(t, b.users, "fan")
			postSvc := NewPostService(b.posts, b.users, nil)
			commentSvc := NewCommentService(b.comments, postSvc, nil)

			post, err := postSvc.CreatePost(ctx, CreatePostInput{
				UserID: author.ID, Title: "t", Description: "d",
			})
			require.NoError(t, err)

			_, err = commentSvc.AddComment(ctx, AddCommentInput{UserID: fan.ID, PostID: post.ID, Text: "hi"})
			require.NoError(t, err)
			_, err = postSvc.ToggleLike(ctx, fan.ID, post.ID)
			require.NoError(t, err)

			require.NoError(t, postSvc.DeletePost(ctx, DeletePostInput{UserID: author.ID, PostID: post.ID}))

			_, err = postSvc.GetPost(ctx, post.ID, 0)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "NOT_FOUND", appErr.Code)

			comments, err := b.comments.ListByPost(ctx, post.ID)
			require.NoError(t, err)
			assert.Empty(t, comments)

			likers, err := b.posts.LikerIDs(ctx, post.ID)
			require.NoError(t, err)
			assert.Empty(t, likers)
		})
	}
}

func TestUpdatePostKeepsOmittedTags(t *testing.T) {
	t.Parallel()

	for _, b := range newBackends(t) {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			author := seedUser(t, b.users, "author")
			svc := NewPostService(b.posts, b.users, nil)

			post, err := svc.CreatePost(ctx, CreatePostInput{
				UserID:      author.ID,
				Title:       "t",
				Description: "d",
				Tags:        []string{"go", "social"},
			})
			require.NoError(t, err)

			updated, err := svc.UpdatePost(ctx, UpdatePostInput{
				UserID: author.ID,
				PostID: post.ID,
				Title:  strPtr("renamed"),
			})
			require.NoError(t, err)
			assert.Equal(t, "renamed", updated.Title)
			assert.Equal(t, []string{"go", "social"}, updated.Tags)

			updated, err = svc.UpdatePost(ctx, UpdatePostInput{
				UserID: author.ID,
				PostID: post.ID,
				Tags:   &[]string{},
			})
			require.NoError(t, err)
			assert.Empty(t, updated.Tags)
		})
	}
}

func TestCommentsListedInCreationOrder(t *testing.T) {
	t.Parallel()

	for _, b := range newBackends(t) {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			author := seedUser(t, b.users, "author")
			postSvc := NewPostService(b.posts, b.users, nil)
			commentSvc := NewCommentService(b.comments, postSvc, nil)

			post, err := postSvc.CreatePost(ctx, CreatePostInput{
				UserID: author.ID, Title: "t", Description: "d",
			})
			require.NoError(t, err)

			for _, text := range []string{"first", "second", "third"} {
				_, err := commentSvc.AddComment(ctx, AddCommentInput{
					UserID: author.ID, PostID: post.ID, Text: text,
				})
				require.NoError(t, err)
			}

			comments, err := commentSvc.ListComments(ctx, post.ID)
			require.NoError(t, err)
			require.Len(t, comments, 3)
			assert.Equal(t, "first", comments[0].Text)
			assert.Equal(t, "second", comments[1].Text)
			assert.Equal(t, "third", comments[2].Text)

			got, err := postSvc.GetPost(ctx, post.ID, author.ID)
			require.NoError(t, err)
			assert.Equal(t, 3, got.CommentsCount)
		})
	}
}

func TestProfileAcrossBackends(t *testing.T) {
	t.Parallel()

	for _, b := range newBackends(t) {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			alice := seedUser(t, b.users, "alice")
			bob := seedUser(t, b.users, "bob")
			postSvc := NewPostService(b.posts, b.users, nil)
			followSvc := NewFollowService(b.follows, b.users, nil)
			userSvc := NewUserService(b.users, b.posts, b.follows)

			_, err := postSvc.CreatePost(ctx, CreatePostInput{
				UserID: alice.ID, Title: "t", Description: "d",
			})
			require.NoError(t, err)
			require.NoError(t, followSvc.Follow(ctx, bob.ID, alice.ID))

			profile, err := userSvc.GetProfile(ctx, "alice", 20, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, alice.ID, profile.User.ID)
			assert.Equal(t, []uint{bob.ID}, profile.User.Followers)
			assert.Empty(t, profile.User.Following)
			require.Len(t, profile.Posts, 1)
		})
	}
}
