package models

import "time"

// Comment is an append-only reply to a post, ordered by creation time
// ascending within its post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post   Post `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
