package feed

import (
	"context"

	feedRepo "safelife/database/repository/feed"
	"safelife/models"
)

// FeedService owns the community feed: posts, comments and like counters.
type FeedService interface {
	CreatePost(ctx context.Context, authorID, authorName, content string) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	AddComment(ctx context.Context, postID, authorID, authorName, text string) (*models.Comment, error)
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	// ToggleLike flips the user's like and returns whether the post is now
	// liked by them.
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
}

// DefaultFeedService is the production implementation.
type DefaultFeedService struct {
	Repo feedRepo.FeedRepository
}
