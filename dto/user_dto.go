package dto

import "github.com/princinho/pepinterview/models"

// UpdateProfileDTO lists the only fields a profile PUT may change.
type UpdateProfileDTO struct {
	FullName          *string                   `json:"fullName"`
	Phone             *string                   `json:"phone"`
	LinkedIn          *string                   `json:"linkedIn"`
	CurrentRole       *string                   `json:"currentRole"`
	Experience        *string                   `json:"experience"`
	PreferredLocation *string                   `json:"preferredLocation"`
	Bio               *string                   `json:"bio"`
	Skills            *[]string                 `json:"skills"`
	ResumeURL         *string                   `json:"resumeUrl"`
	NotificationPrefs *models.NotificationPrefs `json:"notificationPrefs"`
}

type BlockUserDTO struct {
	Blocked bool `json:"blocked"`
}
