package models

import "time"

// Like marks that an actor liked a post. Identity is the (user, post) pair;
// the composite unique index is what serializes concurrent toggles.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_like_user_post;not null"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_like_user_post;not null"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post Post `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
