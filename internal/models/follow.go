package models

import "time"

// Follow is a directed edge between two actors. At most one edge per ordered
// pair; a self-edge is rejected before it ever reaches the store.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followee;not null"`
	FolloweeID uint      `json:"followee_id" gorm:"index;uniqueIndex:idx_follower_followee;not null"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `json:"-" gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Followee User `json:"-" gorm:"foreignKey:FolloweeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
