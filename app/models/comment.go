package models

import "time"

// Comment belongs to exactly one post. PostID never changes after insert.
type Comment struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	PostID    int       `json:"post_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	Post *Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CommentInput is the body accepted when adding a comment to a post.
type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// Validate checks that text was provided.
func (in CommentInput) Validate() error {
	return validateInput(in, MsgCommentTextRequired)
}

// NewComment builds an unsaved comment attached to postID.
func (in CommentInput) NewComment(postID int) *Comment {
	return &Comment{
		PostID: postID,
		Text:   in.Text,
	}
}

// BeforeCreate sets the creation time if it is not set yet.
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
}
