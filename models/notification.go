package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type NotificationType string

const (
	NotificationUpcoming    NotificationType = "upcoming"
	NotificationRescheduled NotificationType = "rescheduled"
	NotificationCancelled   NotificationType = "cancelled"
	NotificationGeneral     NotificationType = "general"
)

func NotificationTypes() []NotificationType {
	return []NotificationType{
		NotificationUpcoming,
		NotificationRescheduled,
		NotificationCancelled,
		NotificationGeneral,
	}
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationUpcoming, NotificationRescheduled, NotificationCancelled, NotificationGeneral:
		return true
	}
	return false
}

// Notification is written once and later only flipped to read.
type Notification struct {
	ID        bson.ObjectID    `bson:"_id,omitempty" json:"id"`
	User      bson.ObjectID    `bson:"user" json:"user"`
	Type      NotificationType `bson:"type" json:"type"`
	Title     string           `bson:"title" json:"title"`
	Message   string           `bson:"message" json:"message"`
	Link      string           `bson:"link,omitempty" json:"link,omitempty"`
	Read      bool             `bson:"read" json:"read"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// LoginLog is an append-only audit record of a login attempt.
type LoginLog struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	User      *bson.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Email     string         `bson:"email" json:"email"`
	Role      Role           `bson:"role,omitempty" json:"role,omitempty"`
	Success   bool           `bson:"success" json:"success"`
	LoginAt   time.Time      `bson:"loginAt" json:"loginAt"`
	UserAgent string         `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
