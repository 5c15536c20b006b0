package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CollUsers = "users"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the account document. Password holds the bcrypt hash and is never
// serialized into responses.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password     string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`
	Status       string             `bson:"status" json:"status"`
	TokenVersion int                `bson:"tokenVersion" json:"-"`
	LastLoginAt  time.Time          `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the signup body.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=15"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
