package feedRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"safelife/models"
)

func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoFeedRepo) InsertPost(ctx context.Context, post *models.Post) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	post.CreatedAt = time.Now()
	if post.LikedBy == nil {
		post.LikedBy = []string{}
	}
	if _, err := r.postColl.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *MongoFeedRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var post models.Post
	if err := r.postColl.FindOne(ctx, bson.M{"id": id}).Decode(&post); err != nil {
		return nil, fmt.Errorf("failed to fetch post %s: %w", id, err)
	}
	return &post, nil
}

func (r *MongoFeedRepo) ListPosts(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.postColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

func (r *MongoFeedRepo) InsertComment(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	comment.CreatedAt = time.Now()
	if _, err := r.commentColl.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *MongoFeedRepo) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.commentColl.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for post %s: %w", postID, err)
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func (r *MongoFeedRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	// Attempt to add the like; only matches when the user has not liked yet.
	addFilter := bson.M{"id": postID, "likedBy": bson.M{"$ne": userID}}
	addUpdate := bson.M{
		"$addToSet": bson.M{"likedBy": userID},
		"$inc":      bson.M{"likeCount": 1},
	}
	res, err := r.postColl.UpdateOne(ctx, addFilter, addUpdate)
	if err != nil {
		return false, fmt.Errorf("failed to like post %s: %w", postID, err)
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	// Already liked (or post missing): try to remove the like.
	removeFilter := bson.M{"id": postID, "likedBy": userID}
	removeUpdate := bson.M{
		"$pull": bson.M{"likedBy": userID},
		"$inc":  bson.M{"likeCount": -1},
	}
	res, err = r.postColl.UpdateOne(ctx, removeFilter, removeUpdate)
	if err != nil {
		return false, fmt.Errorf("failed to unlike post %s: %w", postID, err)
	}
	if res.ModifiedCount == 0 {
		return false, fmt.Errorf("post %s not found", postID)
	}
	return false, nil
}
