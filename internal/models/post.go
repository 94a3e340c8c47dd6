package models

import "time"

// Post is an authored feed entry. Content is immutable after creation;
// deleting a post cascades to its likes, comments and notifications at the
// database level.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=280"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}
