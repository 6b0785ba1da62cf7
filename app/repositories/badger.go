package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// BadgerStore implements Store on an embedded Badger database. Posts live
// under post:<id>, comments under comment:<postID>:<id> so a post's comments
// can be read with one prefix scan. IDs come from Badger sequences, so
// concurrent inserts never contend on a counter key.
type BadgerStore struct {
	db       *badger.DB
	posts    *badger.Sequence
	comments *badger.Sequence
}

// NewBadgerStore wraps an already opened database and leases its ID
// sequences. Close releases the sequences and closes db.
func NewBadgerStore(db *badger.DB) (*BadgerStore, error) {
	posts, err := db.GetSequence([]byte(PostSeqKey), seqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("post sequence: %w", err)
	}
	comments, err := db.GetSequence([]byte(CommentSeqKey), seqBandwidth)
	if err != nil {
		posts.Release()
		return nil, fmt.Errorf("comment sequence: %w", err)
	}
	return &BadgerStore{db: db, posts: posts, comments: comments}, nil
}

// OpenBadger opens (or creates) the database at path. An empty path opens an
// in-memory database.
func OpenBadger(path string, log zerolog.Logger) (*BadgerStore, error) {
	db, err := badger.Open(BadgerOptions(path, log))
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	store, err := NewBadgerStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// BadgerOptions returns the options shared by the server and the maintenance
// commands.
func BadgerOptions(path string, log zerolog.Logger) badger.Options {
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{log: log.With().Str("component", "badger").Logger()}).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	return opts
}

// Ping fails once the database has been closed.
func (s *BadgerStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return fmt.Errorf("badger: database is closed")
	}
	return nil
}

// Close releases the unused part of the sequence leases and closes the
// database. It is safe to call more than once.
func (s *BadgerStore) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	err := errors.Join(s.posts.Release(), s.comments.Release())
	return errors.Join(err, s.db.Close())
}

// update runs fn in a read-write transaction, retrying when a concurrent
// commit touched the keys fn read.
func (s *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxTxnAttempts, err)
}

// badgerLogger routes Badger's internal logging through zerolog. Info
// messages are demoted to debug since Badger is chatty on open and compaction.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Trace().Msgf(strings.TrimSpace(format), args...)
}
