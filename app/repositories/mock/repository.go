// Package mock provides an in-memory Store for service and controller tests.
package mock

import (
	"context"
	"errors"
	"sync"

	"postboard/app/models"
	"postboard/app/repositories"
)

// Store keeps posts and comments in maps. Setting Err makes every call fail
// with that error, which lets tests exercise the 500 paths.
type Store struct {
	mutex         sync.RWMutex
	posts         map[int]*models.Post
	comments      map[int]*models.Comment
	nextPostID    int
	nextCommentID int
	closed        bool

	Err error

	// Writes counts successful mutating calls.
	Writes int
}

func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// Clear drops all data and resets the ID sequences.
func (m *Store) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[int]*models.Post)
	m.comments = make(map[int]*models.Comment)
	m.nextPostID = 1
	m.nextCommentID = 1
	m.Writes = 0
}

// FailWith makes subsequent calls return err. Pass nil to recover.
func (m *Store) FailWith(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Err = err
}

func (m *Store) fail(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.Err
}

func (m *Store) Find(ctx context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if err := m.fail(ctx); err != nil {
		return nil, err
	}

	posts := []*models.Post{}
	for id := 1; id < m.nextPostID; id++ {
		if post, ok := m.posts[id]; ok {
			cp := *post
			posts = append(posts, &cp)
		}
	}
	return posts, nil
}

func (m *Store) FindByID(ctx context.Context, id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if err := m.fail(ctx); err != nil {
		return nil, err
	}

	post, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *post
	return &cp, nil
}

func (m *Store) FindPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if err := m.fail(ctx); err != nil {
		return nil, err
	}

	comments := []*models.Comment{}
	for id := 1; id < m.nextCommentID; id++ {
		if c, ok := m.comments[id]; ok && c.PostID == postID {
			cp := *c
			comments = append(comments, &cp)
		}
	}
	return comments, nil
}

func (m *Store) Insert(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.fail(ctx); err != nil {
		return err
	}

	post.ID = m.nextPostID
	m.nextPostID++
	post.BeforeCreate()
	cp := *post
	m.posts[post.ID] = &cp
	m.Writes++
	return nil
}

func (m *Store) InsertComment(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.fail(ctx); err != nil {
		return err
	}

	if _, ok := m.posts[comment.PostID]; !ok {
		return repositories.ErrNotFound
	}
	comment.ID = m.nextCommentID
	m.nextCommentID++
	comment.BeforeCreate()
	cp := *comment
	m.comments[comment.ID] = &cp
	m.Writes++
	return nil
}

func (m *Store) Update(ctx context.Context, id int, input models.PostInput) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.fail(ctx); err != nil {
		return 0, err
	}

	post, ok := m.posts[id]
	if !ok {
		return 0, nil
	}
	post.Apply(input)
	m.Writes++
	return 1, nil
}

func (m *Store) Remove(ctx context.Context, id int) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.fail(ctx); err != nil {
		return 0, err
	}

	if _, ok := m.posts[id]; !ok {
		return 0, nil
	}
	delete(m.posts, id)
	for cid, c := range m.comments {
		if c.PostID == id {
			delete(m.comments, cid)
		}
	}
	m.Writes++
	return 1, nil
}

func (m *Store) Ping(ctx context.Context) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.closed {
		return errors.New("mock: store closed")
	}
	return m.fail(ctx)
}

func (m *Store) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.closed = true
	return nil
}

var _ repositories.Store = (*Store)(nil)
