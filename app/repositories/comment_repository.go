package repositories

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"postboard/app/models"
)

// FindPostComments returns the comments of a post in insertion order. A
// missing post yields an empty slice, not an error.
func (s *BadgerStore) FindPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comments := []*models.Comment{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := commentPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			}); err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// InsertComment stores a comment. It returns ErrNotFound when the referenced
// post does not exist.
func (s *BadgerStore) InsertComment(ctx context.Context, comment *models.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := nextID(s.comments)
	if err != nil {
		return err
	}
	comment.ID = id
	comment.BeforeCreate()

	data, err := marshalEntity(comment)
	if err != nil {
		return err
	}
	return s.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(postKey(comment.PostID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return txn.Set(commentKey(comment.PostID, comment.ID), data)
	})
}
