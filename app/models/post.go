package models

import "time"

// Post is a blog post. ID is assigned by the repository on insert.
type Post struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Contents  string    `json:"contents" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostInput is the body accepted by create and full update.
type PostInput struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

// Validate checks that both title and contents were provided.
func (in PostInput) Validate() error {
	return validateInput(in, MsgPostFieldsRequired)
}

// NewPost builds an unsaved post from the input.
func (in PostInput) NewPost() *Post {
	return &Post{
		Title:    in.Title,
		Contents: in.Contents,
	}
}

// BeforeCreate sets the timestamps of a post that is about to be stored.
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
}

// Apply replaces the editable fields with the input and bumps UpdatedAt.
func (p *Post) Apply(in PostInput) {
	p.Title = in.Title
	p.Contents = in.Contents
	p.UpdatedAt = time.Now().UTC()
}
