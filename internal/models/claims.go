package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload. UserID is the hex ObjectID of the user
// document.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsAdmin      bool   `json:"is_admin"`
	TokenVersion int    `json:"token_version"`
}
