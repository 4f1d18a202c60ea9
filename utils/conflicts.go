package utils

import (
	"strings"

	"github.com/princinho/pepinterview/models"
)

// FindConflicts returns the scheduled interviews that share interviewer, calendar
// date and time with the probe. A non-zero probe.ID is skipped so an interview
// never conflicts with itself. The scan is advisory; nothing stops the booking.
func FindConflicts(existing []models.Interview, probe models.Interview) []models.Interview {
	out := make([]models.Interview, 0)
	interviewer := strings.TrimSpace(probe.Interviewer)
	if interviewer == "" {
		return out
	}
	for _, iv := range existing {
		if !probe.ID.IsZero() && iv.ID == probe.ID {
			continue
		}
		if iv.Status != models.InterviewStatusScheduled {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(iv.Interviewer), interviewer) {
			continue
		}
		if strings.TrimSpace(iv.Time) != strings.TrimSpace(probe.Time) || !iv.SameDay(probe.Date) {
			continue
		}
		out = append(out, iv)
	}
	return out
}
