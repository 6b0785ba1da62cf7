package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostInputValidation(t *testing.T) {
	tests := []struct {
		name       string
		input      PostInput
		wantErr    bool
		wantFields []string
	}{
		{
			name:  "valid post",
			input: PostInput{Title: "Hello", Contents: "World"},
		},
		{
			name:  "zero string is a value",
			input: PostInput{Title: "0", Contents: "0"},
		},
		{
			name:       "missing title",
			input:      PostInput{Contents: "World"},
			wantErr:    true,
			wantFields: []string{"title"},
		},
		{
			name:       "missing contents",
			input:      PostInput{Title: "Hello"},
			wantErr:    true,
			wantFields: []string{"contents"},
		},
		{
			name:       "both empty",
			input:      PostInput{},
			wantErr:    true,
			wantFields: []string{"title", "contents"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, MsgPostFieldsRequired, verr.Message)
			assert.Equal(t, tt.wantFields, verr.Fields)
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := PostInput{Title: "Test Post", Contents: "Test Content"}.NewPost()

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate()
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
}

func TestPostApply(t *testing.T) {
	created := time.Now().Add(-time.Hour).UTC()
	post := &Post{ID: 3, Title: "Old", Contents: "Old", CreatedAt: created, UpdatedAt: created}

	post.Apply(PostInput{Title: "New", Contents: "Body"})

	assert.Equal(t, 3, post.ID)
	assert.Equal(t, "New", post.Title)
	assert.Equal(t, "Body", post.Contents)
	assert.Equal(t, created, post.CreatedAt)
	assert.True(t, post.UpdatedAt.After(created))
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "bad body", NewValidationError("bad body").Error())

	verr := &ValidationError{Message: "missing", Fields: []string{"title", "contents"}}
	assert.Equal(t, "missing (title, contents)", verr.Error())
}
