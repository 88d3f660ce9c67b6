package feed

import (
	"context"

	"github.com/google/uuid"

	"safelife/models"
)

func (s *DefaultFeedService) CreatePost(ctx context.Context, authorID, authorName, content string) (*models.Post, error) {
	if authorID == "" || content == "" {
		return nil, errEmptyPost
	}
	post := &models.Post{
		ID:         uuid.New().String(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
	}
	if err := s.Repo.InsertPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *DefaultFeedService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return s.Repo.GetPostByID(ctx, postID)
}

func (s *DefaultFeedService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.Repo.ListPosts(ctx)
}

func (s *DefaultFeedService) AddComment(ctx context.Context, postID, authorID, authorName, text string) (*models.Comment, error) {
	if postID == "" || authorID == "" || text == "" {
		return nil, errEmptyComment
	}
	// Commenting on a missing post should fail loudly, not leave orphans.
	if _, err := s.Repo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		ID:         uuid.New().String(),
		PostID:     postID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
	}
	if err := s.Repo.InsertComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *DefaultFeedService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.Repo.ListComments(ctx, postID)
}

func (s *DefaultFeedService) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	return s.Repo.ToggleLike(ctx, postID, userID)
}
