package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Account is an identity record owned by the account service, stored in
// PostgreSQL. Profiles in the document store reference it by AccountID.
type Account struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all accounts
	Name      string    `json:"name"`
	Password  string    `json:"-"` // Store hashed password, ignore for JSON serialization
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is the ephemeral credential issued at sign-in. The row is keyed by
// the JWT ID so deleting it revokes the token before its expiry.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	AccountID string    `json:"account_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// SignUpRequest defines the request body for creating a new account
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username,omitempty" validate:"omitempty,min=2,max=30"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for creating a session
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
