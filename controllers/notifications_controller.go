package controllers

import (
	"context"
	"fmt"
	"log"
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

const notificationPageSize = 50

func notificationTypeList() string {
	types := models.NotificationTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// GET /api/notifications/user/:userId
func (a *App) ListUserNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := paramObjectID(c, "userId")
		if !ok {
			return
		}
		items, err := a.Notifications.ListByUser(c.Request.Context(), userID, notificationPageSize)
		if err != nil {
			respondStoreError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// PATCH /api/notifications/:id/read
func (a *App) MarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return
		}
		n, err := a.Notifications.MarkRead(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, "Notification not found")
			return
		}
		c.JSON(http.StatusOK, n)
	}
}

// POST /api/admin/notifications
func (a *App) CreateNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateNotificationDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "userId, type, title and message are required"})
			return
		}

		nType := models.NotificationType(body.Type)
		if !nType.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "type must be one of: " + notificationTypeList()})
			return
		}

		userID, err := bson.ObjectIDFromHex(body.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
			return
		}

		now := time.Now().UTC()
		n := &models.Notification{
			User:      userID,
			Type:      nType,
			Title:     body.Title,
			Message:   body.Message,
			Link:      strings.TrimSpace(body.Link),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := a.Notifications.Create(c.Request.Context(), n); err != nil {
			respondStoreError(c, err, "")
			return
		}

		a.Hub.Push(n)
		c.JSON(http.StatusCreated, n)
	}
}

// GET /api/notifications/ws
func (a *App) NotificationsSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		a.Hub.Serve(c.Writer, c.Request, userID)
	}
}

// notifyInterviewChange tells the candidate about a reschedule or a
// cancellation, honouring their preferences. Failures are only logged.
func (a *App) notifyInterviewChange(ctx context.Context, before, after *models.Interview) {
	kind, ok := interviewChangeKind(before, after)
	if !ok {
		return
	}

	candidate, err := a.Users.FindByID(ctx, after.User)
	if err != nil {
		log.Printf("notify interview %s: load candidate: %v", after.ID.Hex(), err)
		return
	}

	title, message := interviewChangeText(kind, after)
	link := "/user/interviews/" + after.ID.Hex()

	prefs := candidate.NotificationPrefs
	inApp, email := prefs.InAppRescheduled, prefs.EmailRescheduled
	if kind == models.NotificationCancelled {
		inApp, email = prefs.InAppCancelled, prefs.EmailCancelled
	}

	if inApp {
		now := time.Now().UTC()
		n := &models.Notification{
			User:      candidate.ID,
			Type:      kind,
			Title:     title,
			Message:   message,
			Link:      link,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := a.Notifications.Create(ctx, n); err != nil {
			log.Printf("notify interview %s: %v", after.ID.Hex(), err)
		} else {
			a.Hub.Push(n)
		}
	}

	if email && a.Mailer != nil {
		html, err := utils.RenderTemplate("interview-update.html", map[string]any{
			"Name":        candidate.FullName,
			"Message":     message,
			"Role":        after.Role,
			"Company":     after.Company,
			"Date":        after.Date.UTC().Format("2006-01-02"),
			"Time":        after.Time,
			"MeetingLink": after.MeetingLink,
			"Link":        a.Config.ClientURL + link,
		})
		if err == nil {
			err = a.Mailer.Send(ctx, models.MailDestination{Name: candidate.FullName, Email: candidate.Email}, title, html)
		}
		if err != nil {
			log.Printf("notify interview %s: mail: %v", after.ID.Hex(), err)
		}
	}
}

func interviewChangeKind(before, after *models.Interview) (models.NotificationType, bool) {
	if after.Status == models.InterviewStatusCancelled && before.Status != models.InterviewStatusCancelled {
		return models.NotificationCancelled, true
	}
	if after.Status == models.InterviewStatusCancelled {
		return "", false
	}
	if !after.Date.Equal(before.Date) || after.Time != before.Time {
		return models.NotificationRescheduled, true
	}
	return "", false
}

func interviewChangeText(kind models.NotificationType, iv *models.Interview) (string, string) {
	day := iv.Date.UTC().Format("Mon, Jan 2 2006")
	if kind == models.NotificationCancelled {
		return "Interview cancelled",
			fmt.Sprintf("Your %s interview with %s on %s at %s has been cancelled.", iv.Role, iv.Company, day, iv.Time)
	}
	return "Interview rescheduled",
		fmt.Sprintf("Your %s interview with %s has been moved to %s at %s.", iv.Role, iv.Company, day, iv.Time)
}
