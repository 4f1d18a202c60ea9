package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleCandidate   Role = "candidate"
	RoleInterviewer Role = "interviewer"
	RoleAdmin       Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCandidate, RoleInterviewer, RoleAdmin:
		return true
	}
	return false
}

type NotificationPrefs struct {
	EmailUpcoming    bool `bson:"emailUpcoming" json:"emailUpcoming"`
	EmailRescheduled bool `bson:"emailRescheduled" json:"emailRescheduled"`
	EmailCancelled   bool `bson:"emailCancelled" json:"emailCancelled"`
	InAppUpcoming    bool `bson:"inAppUpcoming" json:"inAppUpcoming"`
	InAppRescheduled bool `bson:"inAppRescheduled" json:"inAppRescheduled"`
	InAppCancelled   bool `bson:"inAppCancelled" json:"inAppCancelled"`
}

// DefaultNotificationPrefs has every channel switched on.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{
		EmailUpcoming:    true,
		EmailRescheduled: true,
		EmailCancelled:   true,
		InAppUpcoming:    true,
		InAppRescheduled: true,
		InAppCancelled:   true,
	}
}

// User covers candidates, interviewers and admins; role is a plain field.
type User struct {
	ID                bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	FullName          string            `bson:"fullName" json:"fullName"`
	SearchName        string            `bson:"searchName,omitempty" json:"-"` // folded fullName for admin search
	Email             string            `bson:"email" json:"email"`
	PasswordHash      string            `bson:"password" json:"-"` // never expose
	Phone             string            `bson:"phone,omitempty" json:"phone,omitempty"`
	LinkedIn          string            `bson:"linkedIn,omitempty" json:"linkedIn,omitempty"`
	CurrentRole       string            `bson:"currentRole,omitempty" json:"currentRole,omitempty"`
	Experience        string            `bson:"experience,omitempty" json:"experience,omitempty"`
	PreferredLocation string            `bson:"preferredLocation,omitempty" json:"preferredLocation,omitempty"`
	Bio               string            `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills            []string          `bson:"skills" json:"skills"`
	ResumeURL         string            `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`
	Role              Role              `bson:"role" json:"role"`
	IsBlocked         bool              `bson:"isBlocked" json:"isBlocked"`
	NotificationPrefs NotificationPrefs `bson:"notificationPrefs" json:"notificationPrefs"`

	ResetPasswordToken   string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the session payload returned by the auth endpoints.
type UserSummary struct {
	ID       bson.ObjectID `json:"id"`
	Email    string        `json:"email"`
	FullName string        `json:"fullName"`
	Role     Role          `json:"role"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

// ProfileUpdate carries the self-editable profile fields; nil means untouched.
type ProfileUpdate struct {
	FullName          *string
	Phone             *string
	LinkedIn          *string
	CurrentRole       *string
	Experience        *string
	PreferredLocation *string
	Bio               *string
	Skills            *[]string
	ResumeURL         *string
	NotificationPrefs *NotificationPrefs

	SearchName *string // set together with FullName
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.FullName == nil && p.Phone == nil && p.LinkedIn == nil && p.CurrentRole == nil &&
		p.Experience == nil && p.PreferredLocation == nil && p.Bio == nil && p.Skills == nil &&
		p.ResumeURL == nil && p.NotificationPrefs == nil
}

type UserFilter struct {
	Role  Role
	Query string // already folded
}
