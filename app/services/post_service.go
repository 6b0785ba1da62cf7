package services

import (
	"context"
	"fmt"
	"time"

	"postboard/app/models"
	"postboard/app/repositories"
)

// PostService handles business logic for blog posts. Errors are either a
// *models.ValidationError, repositories.ErrNotFound, or a wrapped storage
// failure.
type PostService struct {
	repo    repositories.PostRepository
	timeout time.Duration
}

// NewPostService creates a new PostService
func NewPostService(repo repositories.PostRepository, timeout time.Duration) *PostService {
	return &PostService{
		repo:    repo,
		timeout: timeout,
	}
}

// ListPosts returns all posts.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	posts, err := s.repo.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost retrieves a post by ID.
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return post, nil
}

// CreatePost validates the input and stores a new post.
func (s *PostService) CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	post := input.NewPost()
	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdatePost replaces title and contents and returns the stored post.
func (s *PostService) UpdatePost(ctx context.Context, id int, input models.PostInput) (*models.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("update post %d: %w", id, repositories.ErrNotFound)
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload post %d: %w", id, err)
	}
	return post, nil
}

// DeletePost removes a post and its comments.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.repo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete post %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}
