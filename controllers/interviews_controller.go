package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/pepinterview/dto"
	"github.com/princinho/pepinterview/middleware"
	"github.com/princinho/pepinterview/models"
	"github.com/princinho/pepinterview/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	errInvalidStatus = errors.New("status must be one of: scheduled, completed, pending, pending_approval, cancelled, selected, rejected")
	errInvalidMode   = errors.New("mode must be Online or On-site")
	errInvalidDate   = errors.New("date must be YYYY-MM-DD or an RFC3339 timestamp")
)

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// interviewUpdateFromDTO converts the request fields that were sent. Role and
// company are trimmed; enums and the date are parsed.
func interviewUpdateFromDTO(body dto.InterviewDTO) (models.InterviewUpdate, error) {
	u := models.InterviewUpdate{
		Role:                       trimmed(body.Role),
		Company:                    trimmed(body.Company),
		Time:                       trimmed(body.Time),
		Duration:                   body.Duration,
		MeetingLink:                trimmed(body.MeetingLink),
		Platform:                   body.Platform,
		Interviewer:                trimmed(body.Interviewer),
		InterviewerEmail:           trimmed(body.InterviewerEmail),
		Address:                    body.Address,
		Outcome:                    body.Outcome,
		Notes:                      body.Notes,
		Feedback:                   body.Feedback,
		FeedbackVisibleToCandidate: body.FeedbackVisibleToCandidate,
	}
	if body.Date != nil {
		d, err := utils.ParseInterviewDate(*body.Date)
		if err != nil {
			return u, errInvalidDate
		}
		u.Date = &d
	}
	if body.Mode != nil {
		m, ok := models.ParseInterviewMode(*body.Mode)
		if !ok {
			return u, errInvalidMode
		}
		u.Mode = &m
	}
	if body.Status != nil {
		s, ok := models.ParseInterviewStatus(*body.Status)
		if !ok {
			return u, errInvalidStatus
		}
		u.Status = &s
	}
	return u, nil
}

func isBlank(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}

// ensureMeetingLink fills in a generated link (and the default platform) on
// online interviews that have none.
func ensureMeetingLink(iv *models.Interview) error {
	if !iv.Mode.IsOnline() || iv.MeetingLink != "" {
		return nil
	}
	link, err := utils.GenerateMeetLink()
	if err != nil {
		return err
	}
	iv.MeetingLink = link
	if iv.Platform == "" {
		iv.Platform = models.DefaultMeetingPlatform
	}
	return nil
}

// GET /api/interviews/user/:userId?status=
func (a *App) ListUserInterviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := paramObjectID(c, "userId")
		if !ok {
			return
		}

		var status models.InterviewStatus
		if raw := c.Query("status"); raw != "" {
			s, ok := models.ParseInterviewStatus(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidStatus.Error()})
				return
			}
			status = s
		}

		items, err := a.Interviews.ListByUser(c.Request.Context(), userID, status)
		if err != nil {
			respondStoreError(c, err, "")
			return
		}

		// Feedback is hidden from the candidate's own list until released.
		if callerID, ok := middleware.CurrentUserID(c); ok && callerID == userID {
			for i := range items {
				if !items[i].FeedbackVisibleToCandidate {
					items[i].Feedback = ""
				}
			}
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /api/interviews/:id
func (a *App) GetInterview() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return
		}
		iv, err := a.Interviews.FindDetail(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, "Interview not found")
			return
		}
		c.JSON(http.StatusOK, iv)
	}
}

// POST /api/interviews
func (a *App) CreateInterview() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.InterviewDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if isBlank(body.Role) || isBlank(body.Company) || isBlank(body.Date) || isBlank(body.Time) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Role, company, date and time are required"})
			return
		}

		callerID, _ := middleware.CurrentUserID(c)
		userID := callerID
		if !isBlank(body.UserID) {
			id, err := bson.ObjectIDFromHex(strings.TrimSpace(*body.UserID))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
				return
			}
			userID = id
		}

		fields, err := interviewUpdateFromDTO(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		now := time.Now().UTC()
		iv := &models.Interview{
			User:      userID,
			Duration:  models.DefaultInterviewDuration,
			Mode:      models.InterviewModeOnline,
			Status:    models.InterviewStatusScheduled,
			CreatedAt: now,
			UpdatedAt: now,
		}
		fields.Apply(iv)

		if middleware.CurrentRole(c) == models.RoleCandidate {
			iv.Status = models.InterviewStatusPendingApproval
		}
		if err := ensureMeetingLink(iv); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		if err := a.Interviews.Create(c.Request.Context(), iv); err != nil {
			respondStoreError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, iv)
	}
}

// PUT /api/interviews/:id
func (a *App) UpdateInterview() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return
		}

		var body dto.InterviewDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		update, err := interviewUpdateFromDTO(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if middleware.CurrentRole(c) == models.RoleCandidate {
			pending := models.InterviewStatusPendingApproval
			update.Status = &pending
		}

		ctx := c.Request.Context()
		before, err := a.Interviews.FindByID(ctx, id)
		if err != nil {
			respondStoreError(c, err, "Interview not found")
			return
		}

		after := *before
		update.Apply(&after)
		if err := ensureMeetingLink(&after); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		if after.MeetingLink != before.MeetingLink {
			update.MeetingLink = &after.MeetingLink
		}
		if after.Platform != before.Platform {
			update.Platform = &after.Platform
		}

		if update.IsEmpty() {
			c.JSON(http.StatusOK, before)
			return
		}

		saved, err := a.Interviews.Update(ctx, id, update)
		if err != nil {
			respondStoreError(c, err, "Interview not found")
			return
		}

		a.notifyInterviewChange(ctx, before, saved)
		c.JSON(http.StatusOK, saved)
	}
}
