package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an identified participant (actor) in the feed. The row is created
// once on first successful session sync and never deleted by this service.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:64"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Password    string    `json:"-"` // bcrypt hash, local accounts only
	AvatarURL   string    `json:"avatar_url"`
	ProviderUID string    `json:"-" gorm:"uniqueIndex;size:128"` // external identity provider subject
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact carries the identity fields embedded into feed and
// notification payloads.
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// ToCompact strips the user down to its public identity fields.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
