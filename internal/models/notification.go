package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CollNotifications = "notifications"

// Notification is a broadcast or targeted message. TargetUsers nil means
// broadcast; read state is set membership in ReadBy, not a per-user row.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Message     string             `bson:"message" json:"message"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	TargetUsers []string           `bson:"targetUsers,omitempty" json:"targetUsers,omitempty"`
	ReadBy      []string           `bson:"readBy" json:"readBy"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	ExpiresAt   *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NotificationCreate is the admin request body for creating a notification.
type NotificationCreate struct {
	Title       string     `json:"title" validate:"required,min=2,max=200"`
	Message     string     `json:"message" validate:"required,min=2"`
	Category    string     `json:"category"`
	TargetUsers []string   `json:"targetUsers"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}
