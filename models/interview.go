package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type InterviewStatus string

const (
	InterviewStatusScheduled       InterviewStatus = "scheduled"
	InterviewStatusCompleted       InterviewStatus = "completed"
	InterviewStatusPending         InterviewStatus = "pending"
	InterviewStatusPendingApproval InterviewStatus = "pending_approval"
	InterviewStatusCancelled       InterviewStatus = "cancelled"
	InterviewStatusSelected        InterviewStatus = "selected"
	InterviewStatusRejected        InterviewStatus = "rejected"
)

var interviewStatusLabels = map[InterviewStatus]string{
	InterviewStatusScheduled:       "Scheduled",
	InterviewStatusCompleted:       "Completed",
	InterviewStatusPending:         "Pending feedback",
	InterviewStatusPendingApproval: "Pending approval",
	InterviewStatusCancelled:       "Cancelled",
	InterviewStatusSelected:        "Selected",
	InterviewStatusRejected:        "Rejected",
}

// AllInterviewStatuses lists the persisted values in display order.
func AllInterviewStatuses() []InterviewStatus {
	return []InterviewStatus{
		InterviewStatusScheduled,
		InterviewStatusCompleted,
		InterviewStatusPending,
		InterviewStatusPendingApproval,
		InterviewStatusCancelled,
		InterviewStatusSelected,
		InterviewStatusRejected,
	}
}

func (s InterviewStatus) IsValid() bool {
	_, ok := interviewStatusLabels[s]
	return ok
}

// Label is the user-facing text for a status; unknown values are returned as-is.
func (s InterviewStatus) Label() string {
	if l, ok := interviewStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseInterviewStatus accepts either the persisted value or its display label.
func ParseInterviewStatus(v string) (InterviewStatus, bool) {
	v = strings.TrimSpace(v)
	if s := InterviewStatus(v); s.IsValid() {
		return s, true
	}
	for s, label := range interviewStatusLabels {
		if strings.EqualFold(label, v) {
			return s, true
		}
	}
	return "", false
}

type InterviewMode string

const (
	InterviewModeOnline InterviewMode = "Online"
	InterviewModeOnSite InterviewMode = "On-site"
)

// ParseInterviewMode is case-insensitive and tolerates "onsite"/"on site".
func ParseInterviewMode(v string) (InterviewMode, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "online":
		return InterviewModeOnline, true
	case "on-site", "onsite", "on site":
		return InterviewModeOnSite, true
	}
	return "", false
}

func (m InterviewMode) IsOnline() bool {
	return strings.EqualFold(string(m), string(InterviewModeOnline))
}

const (
	DefaultInterviewDuration = 60
	DefaultMeetingPlatform   = "Google Meet"
)

// Interview is one scheduled or completed interview for a single candidate.
// Status is any allowed value at any time; there is no transition table.
type Interview struct {
	ID                         bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	User                       bson.ObjectID   `bson:"user" json:"user"`
	Role                       string          `bson:"role" json:"role"`
	Company                    string          `bson:"company" json:"company"`
	Date                       time.Time       `bson:"date" json:"date"`
	Time                       string          `bson:"time" json:"time"`
	Duration                   int             `bson:"duration" json:"duration"`
	Mode                       InterviewMode   `bson:"mode" json:"mode"`
	Status                     InterviewStatus `bson:"status" json:"status"`
	MeetingLink                string          `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	Platform                   string          `bson:"platform,omitempty" json:"platform,omitempty"`
	Interviewer                string          `bson:"interviewer,omitempty" json:"interviewer,omitempty"`
	InterviewerEmail           string          `bson:"interviewerEmail,omitempty" json:"interviewerEmail,omitempty"`
	Address                    string          `bson:"address,omitempty" json:"address,omitempty"`
	Outcome                    string          `bson:"outcome,omitempty" json:"outcome,omitempty"`
	Notes                      string          `bson:"notes,omitempty" json:"notes,omitempty"`
	Feedback                   string          `bson:"feedback,omitempty" json:"feedback,omitempty"`
	FeedbackVisibleToCandidate bool            `bson:"feedbackVisibleToCandidate" json:"feedbackVisibleToCandidate"`
	CreatedAt                  time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt                  time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// SameDay compares calendar dates in UTC.
func (iv *Interview) SameDay(t time.Time) bool {
	a, b := iv.Date.UTC(), t.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// CandidateSummary is the populated form of Interview.User.
type CandidateSummary struct {
	ID       bson.ObjectID `bson:"_id" json:"id"`
	FullName string        `bson:"fullName" json:"fullName"`
	Email    string        `bson:"email" json:"email"`
	Role     Role          `bson:"role,omitempty" json:"role,omitempty"`
}

// InterviewDetail is an interview with its user reference resolved.
// The outer "user" JSON key shadows the embedded ObjectID.
type InterviewDetail struct {
	Interview `bson:",inline"`
	Candidate *CandidateSummary `bson:"candidate,omitempty" json:"user"`
}

// InterviewUpdate holds a partial update; nil fields are left untouched.
type InterviewUpdate struct {
	Role                       *string
	Company                    *string
	Date                       *time.Time
	Time                       *string
	Duration                   *int
	Mode                       *InterviewMode
	Status                     *InterviewStatus
	MeetingLink                *string
	Platform                   *string
	Interviewer                *string
	InterviewerEmail           *string
	Address                    *string
	Outcome                    *string
	Notes                      *string
	Feedback                   *string
	FeedbackVisibleToCandidate *bool
}

func (u InterviewUpdate) IsEmpty() bool {
	return u.Role == nil && u.Company == nil && u.Date == nil && u.Time == nil &&
		u.Duration == nil && u.Mode == nil && u.Status == nil && u.MeetingLink == nil &&
		u.Platform == nil && u.Interviewer == nil && u.InterviewerEmail == nil &&
		u.Address == nil && u.Outcome == nil && u.Notes == nil && u.Feedback == nil &&
		u.FeedbackVisibleToCandidate == nil
}

// Apply copies the set fields onto iv.
func (u InterviewUpdate) Apply(iv *Interview) {
	if u.Role != nil {
		iv.Role = *u.Role
	}
	if u.Company != nil {
		iv.Company = *u.Company
	}
	if u.Date != nil {
		iv.Date = *u.Date
	}
	if u.Time != nil {
		iv.Time = *u.Time
	}
	if u.Duration != nil {
		iv.Duration = *u.Duration
	}
	if u.Mode != nil {
		iv.Mode = *u.Mode
	}
	if u.Status != nil {
		iv.Status = *u.Status
	}
	if u.MeetingLink != nil {
		iv.MeetingLink = *u.MeetingLink
	}
	if u.Platform != nil {
		iv.Platform = *u.Platform
	}
	if u.Interviewer != nil {
		iv.Interviewer = *u.Interviewer
	}
	if u.InterviewerEmail != nil {
		iv.InterviewerEmail = *u.InterviewerEmail
	}
	if u.Address != nil {
		iv.Address = *u.Address
	}
	if u.Outcome != nil {
		iv.Outcome = *u.Outcome
	}
	if u.Notes != nil {
		iv.Notes = *u.Notes
	}
	if u.Feedback != nil {
		iv.Feedback = *u.Feedback
	}
	if u.FeedbackVisibleToCandidate != nil {
		iv.FeedbackVisibleToCandidate = *u.FeedbackVisibleToCandidate
	}
}
