package repositories

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"postboard/app/models"
)

// Find returns every post ordered by ID.
func (s *BadgerStore) Find(ctx context.Context) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := []*models.Post{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var post models.Post
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			}); err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID retrieves a post by ID
func (s *BadgerStore) FindByID(ctx context.Context, id int) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post models.Post
	err := s.db.View(func(txn *badger.Txn) error {
		return getPost(txn, id, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Insert assigns the next post ID and stores the post.
func (s *BadgerStore) Insert(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := nextID(s.posts)
	if err != nil {
		return err
	}
	post.ID = id
	post.BeforeCreate()

	data, err := marshalEntity(post)
	if err != nil {
		return err
	}
	return s.update(ctx, func(txn *badger.Txn) error {
		return txn.Set(postKey(post.ID), data)
	})
}

// Update replaces title and contents of an existing post.
func (s *BadgerStore) Update(ctx context.Context, id int, input models.PostInput) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	updated := 0
	err := s.update(ctx, func(txn *badger.Txn) error {
		updated = 0
		var post models.Post
		err := getPost(txn, id, &post)
		if err == ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		post.Apply(input)
		data, err := marshalEntity(&post)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(id), data); err != nil {
			return err
		}
		updated = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// Remove deletes a post together with its comments in one transaction.
func (s *BadgerStore) Remove(ctx context.Context, id int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	removed := 0
	err := s.update(ctx, func(txn *badger.Txn) error {
		removed = 0
		key := postKey(id)
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		keys, err := collectKeys(txn, commentPrefix(id))
		if err != nil {
			return err
		}
		for _, k := range append(keys, key) {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		removed = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func getPost(txn *badger.Txn, id int, post *models.Post) error {
	item, err := txn.Get(postKey(id))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, post)
	})
}

// collectKeys copies every key under prefix. Keys are copied because the
// iterator reuses its buffers.
func collectKeys(txn *badger.Txn, prefix []byte) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys, nil
}
