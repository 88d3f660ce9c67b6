package feedRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"safelife/database"
	"safelife/models"
)

// FeedRepository persists community posts and their comments.
type FeedRepository interface {
	InsertPost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	// ListPosts returns posts in reverse chronological order.
	ListPosts(ctx context.Context) ([]models.Post, error)
	InsertComment(ctx context.Context, comment *models.Comment) error
	// ListComments returns a post's comments in chronological order.
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	// ToggleLike flips the user's like on a post and returns the new state.
	// The likedBy membership check and counter update happen in a single
	// conditional update, so repeated taps stay idempotent per user.
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
}

// MongoFeedRepo implements FeedRepository using MongoDB.
type MongoFeedRepo struct {
	postColl    *mongo.Collection
	commentColl *mongo.Collection
}

// NewMongoFeedRepo creates a new FeedRepository backed by MongoDB.
func NewMongoFeedRepo() FeedRepository {
	db := database.DB()
	repo := &MongoFeedRepo{
		postColl:    db.Collection("posts"),
		commentColl: db.Collection("comments"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoFeedRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	postIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.postColl.Indexes().CreateMany(ctx, postIndexes); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	commentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	if _, err := r.commentColl.Indexes().CreateMany(ctx, commentIndexes); err != nil {
		return fmt.Errorf("failed to create comment indexes: %w", err)
	}
	return nil
}
