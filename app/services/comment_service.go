package services

import (
	"context"
	"fmt"
	"time"

	"postboard/app/models"
	"postboard/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	repo    repositories.PostRepository
	timeout time.Duration
}

// NewCommentService creates a new CommentService
func NewCommentService(repo repositories.PostRepository, timeout time.Duration) *CommentService {
	return &CommentService{
		repo:    repo,
		timeout: timeout,
	}
}

// ListPostComments returns the comments of a post. A post without comments
// and a missing post both yield repositories.ErrNotFound.
func (s *CommentService) ListPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	comments, err := s.repo.FindPostComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	if len(comments) == 0 {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, repositories.ErrNotFound)
	}
	return comments, nil
}

// CreateComment validates the input and attaches a new comment to postID.
func (s *CommentService) CreateComment(ctx context.Context, postID int, input models.CommentInput) (*models.Comment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	comment := input.NewComment(postID)
	if err := s.repo.InsertComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment on post %d: %w", postID, err)
	}
	return comment, nil
}
