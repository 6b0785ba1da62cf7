package repositories

import (
	"context"

	"postboard/app/models"
)

// PostRepository is the data-access contract used by the services. Update and
// Remove report how many posts they touched; zero means the post was absent.
type PostRepository interface {
	Find(ctx context.Context) ([]*models.Post, error)
	FindByID(ctx context.Context, id int) (*models.Post, error)
	FindPostComments(ctx context.Context, postID int) ([]*models.Comment, error)
	Insert(ctx context.Context, post *models.Post) error
	InsertComment(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, id int, input models.PostInput) (int, error)
	Remove(ctx context.Context, id int) (int, error)
}

// Store is a PostRepository backed by an open database handle.
type Store interface {
	PostRepository
	Ping(ctx context.Context) error
	Close() error
}
