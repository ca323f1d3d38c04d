package seed

import (
	"testing"

	"friendflow/internal/models"
)

func TestFactory_EngagementRoundTrip(t *testing.T) {
	t.Parallel()
	db := openSeedDB(t)

	factory := NewFactory(db, Options{SkipBcrypt: true})

	author, err := factory.CreateUser()
	if err != nil {
		t.Fatalf("create author: %v", err)
	}
	fan, err := factory.CreateUser()
	if err != nil {
		t.Fatalf("create fan: %v", err)
	}

	post, err := factory.CreatePost(author)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.UserID != author.ID {
		t.Fatalf("expected post owned by %d, got %d", author.ID, post.UserID)
	}

	if err := factory.CreateLike(fan, post); err != nil {
		t.Fatalf("create like: %v", err)
	}
	// duplicate like must be rejected by the unique index
	if err := factory.CreateLike(fan, post); err == nil {
		t.Fatal("expected duplicate like to fail")
	}

	comment, err := factory.CreateComment(fan, post)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.PostID != post.ID || comment.UserID != fan.ID {
		t.Fatalf("unexpected comment linkage: %+v", comment)
	}

	if err := factory.CreateFollow(fan, author); err != nil {
		t.Fatalf("create follow: %v", err)
	}
	var edge models.Follow
	if err := db.First(&edge, "follower_id = ? AND followee_id = ?", fan.ID, author.ID).Error; err != nil {
		t.Fatalf("expected follow edge: %v", err)
	}
}

func TestFactory_DryRunSkipsWrites(t *testing.T) {
	t.Parallel()

	factory := NewFactory(nil, Options{DryRun: true})

	user, err := factory.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected synthetic ID in dry-run mode")
	}

	post, err := factory.CreatePost(user)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected synthetic post ID in dry-run mode")
	}

	batch := []*models.Post{factory.BuildPost(user), factory.BuildPost(user)}
	if err := factory.CreatePostsBatch(batch); err != nil {
		t.Fatalf("batch create: %v", err)
	}
	if batch[0].ID == 0 || batch[1].ID == 0 {
		t.Fatal("expected synthetic IDs for batched posts")
	}
}
