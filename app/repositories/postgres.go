package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"postboard/app/models"
)

// PostgresStore implements Store with gorm on PostgreSQL. Comments reference
// posts through a foreign key with ON DELETE CASCADE.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore wraps an open gorm handle.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects to dsn and migrates the posts and comments tables.
func OpenPostgres(ctx context.Context, dsn string, log zerolog.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			gormWriter{log: log.With().Str("component", "gorm").Logger()},
			gormlogger.Config{
				SlowThreshold:             500 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.Post{}, &models.Comment{}); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}

	return NewPostgresStore(db), nil
}

func (s *PostgresStore) Find(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	if err := s.db.WithContext(ctx).Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostgresStore) FindPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *PostgresStore) Insert(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	return s.db.WithContext(ctx).Create(post).Error
}

// InsertComment checks the parent post inside the same transaction so a
// missing post surfaces as ErrNotFound rather than a foreign key violation.
func (s *PostgresStore) InsertComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		comment.BeforeCreate()
		return tx.Omit("Post").Create(comment).Error
	})
}

func (s *PostgresStore) Update(ctx context.Context, id int, input models.PostInput) (int, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":      input.Title,
			"contents":   input.Contents,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (s *PostgresStore) Remove(ctx context.Context, id int) (int, error) {
	res := s.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormWriter adapts zerolog to gorm's logger.Writer.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn().Msgf(format, args...)
}
