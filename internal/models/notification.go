package models

import "time"

// Notification kinds. One row is written per follow-creation, like-creation
// and comment-creation, inside the same transaction as the triggering write.
const (
	NotificationFollow  = "FOLLOW"
	NotificationLike    = "LIKE"
	NotificationComment = "COMMENT"
)

// Notification records that a creator acted on something owned by the
// recipient. Rows are never written for self-directed actions and never
// updated after creation except for the read flag.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:16;index;not null"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	CreatorID   uint      `json:"creator_id" gorm:"index;not null"`
	PostID      *uint     `json:"post_id,omitempty"`
	CommentID   *uint     `json:"comment_id,omitempty"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Recipient User     `json:"-" gorm:"foreignKey:RecipientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Creator   User     `json:"-" gorm:"foreignKey:CreatorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post      *Post    `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Comment   *Comment `json:"-" gorm:"foreignKey:CommentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
