package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/app/models"
)

func TestNextID(t *testing.T) {
	dir := t.TempDir()
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	require.NoError(t, err)

	store, err := NewBadgerStore(db)
	require.NoError(t, err)

	t.Run("first ID", func(t *testing.T) {
		id, err := nextID(store.posts)
		require.NoError(t, err)
		assert.Equal(t, 1, id)
	})

	t.Run("sequential IDs", func(t *testing.T) {
		for i := 2; i <= 5; i++ {
			id, err := nextID(store.posts)
			require.NoError(t, err)
			assert.Equal(t, i, id)
		}
	})

	t.Run("different sequence keys", func(t *testing.T) {
		id, err := nextID(store.comments)
		require.NoError(t, err)
		assert.Equal(t, 1, id, "Comment sequence should start from 1")
	})

	t.Run("persistence", func(t *testing.T) {
		require.NoError(t, store.Close())

		db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
		require.NoError(t, err)
		reopened, err := NewBadgerStore(db)
		require.NoError(t, err)
		defer reopened.Close()

		id, err := nextID(reopened.posts)
		require.NoError(t, err)
		assert.Equal(t, 6, id)

		id, err = nextID(reopened.comments)
		require.NoError(t, err)
		assert.Equal(t, 2, id)
	})
}

func TestKeysSortNumerically(t *testing.T) {
	assert.Less(t, string(postKey(9)), string(postKey(10)))
	assert.Less(t, string(commentKey(1, 9)), string(commentKey(1, 10)))
	assert.Less(t, string(commentKey(1, 99)), string(commentKey(2, 1)))
	assert.Equal(t, "comment:0000000003:", string(commentPrefix(3)))
}

func TestUnmarshalEntity(t *testing.T) {
	t.Run("unmarshal post", func(t *testing.T) {
		data := []byte(`{"id":1,"title":"Test Post","contents":"Test Content"}`)
		var post models.Post
		require.NoError(t, unmarshalEntity(data, &post))
		assert.Equal(t, 1, post.ID)
		assert.Equal(t, "Test Post", post.Title)
		assert.Equal(t, "Test Content", post.Contents)
	})

	t.Run("unmarshal comment", func(t *testing.T) {
		data := []byte(`{"id":1,"post_id":2,"text":"Test Content"}`)
		var comment models.Comment
		require.NoError(t, unmarshalEntity(data, &comment))
		assert.Equal(t, 2, comment.PostID)
		assert.Equal(t, "Test Content", comment.Text)
	})

	t.Run("unmarshal invalid JSON", func(t *testing.T) {
		var post models.Post
		assert.Error(t, unmarshalEntity([]byte(`{"id":1,invalid json}`), &post))
	})

	t.Run("marshal invalid entity", func(t *testing.T) {
		_, err := marshalEntity(struct{ Ch chan int }{Ch: make(chan int)})
		assert.Error(t, err)
	})
}
