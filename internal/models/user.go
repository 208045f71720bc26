package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:150"`
	Email       string    `json:"email" gorm:"uniqueIndex;size:254"`
	Password    string    `json:"-"` // bcrypt hash, never serialized
	FirstName   string    `json:"first_name"`
	Bio         string    `json:"bio" gorm:"type:text"`
	PhoneNumber string    `json:"phone_number"`
	Gender      string    `json:"gender" gorm:"size:10"`
	AvatarURL   string    `json:"avatar_url"`
	IsActive    bool      `json:"-" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the author shape embedded in feed entries and comments.
type UserCompact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	AvatarURL string `json:"avatar_url"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		AvatarURL: u.AvatarURL,
	}
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"omitempty,max=150"`
	Bio             string `json:"bio" validate:"omitempty,max=1000"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,max=32"`
	Gender          string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type LoginRequest struct {
	// Identifier is a username or an email address.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName   string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
