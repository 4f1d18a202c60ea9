package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/pepinterview/dto"
	"github.com/princinho/pepinterview/middleware"
	"github.com/princinho/pepinterview/models"
	"github.com/princinho/pepinterview/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func isSelf(c *gin.Context, id string) bool {
	callerID, ok := middleware.CurrentUserID(c)
	return ok && callerID.Hex() == id
}

// GET /api/admin/interviews
func (a *App) ListAllInterviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := a.Interviews.ListAll(c.Request.Context())
		if err != nil {
			respondStoreError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /api/admin/interviews/conflicts?interviewer=&date=&time=&excludeId=
func (a *App) FindInterviewConflicts() gin.HandlerFunc {
	return func(c *gin.Context) {
		interviewer := strings.TrimSpace(c.Query("interviewer"))
		rawDate := strings.TrimSpace(c.Query("date"))
		slot := strings.TrimSpace(c.Query("time"))
		if interviewer == "" || rawDate == "" || slot == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "interviewer, date and time are required"})
			return
		}

		date, err := utils.ParseInterviewDate(rawDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidDate.Error()})
			return
		}

		probe := models.Interview{Interviewer: interviewer, Date: date, Time: slot}
		if raw := c.Query("excludeId"); raw != "" {
			id, err := bson.ObjectIDFromHex(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid excludeId"})
				return
			}
			probe.ID = id
		}

		existing, err := a.Interviews.ListByInterviewer(c.Request.Context(), interviewer)
		if err != nil {
			respondStoreError(c, err, "")
			return
		}

		conflicts := utils.FindConflicts(existing, probe)
		c.JSON(http.StatusOK, gin.H{"hasConflict": len(conflicts) > 0, "conflicts": conflicts})
	}
}

// GET /api/admin/users?role=&q=
func (a *App) ListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.UserFilter
		if role := models.Role(c.Query("role")); role.IsValid() {
			filter.Role = role
		}
		filter.Query = utils.FoldName(c.Query("q"))

		users, err := a.Users.List(c.Request.Context(), filter)
		if err != nil {
			respondStoreError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PATCH /api/admin/users/:id/block
func (a *App) BlockUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSelf(c, c.Param("id")) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot block yourself"})
			return
		}
		id, ok := paramObjectID(c, "id")
		if !ok {
			return
		}

		var body dto.BlockUserDTO
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		user, err := a.Users.SetBlocked(c.Request.Context(), id, body.Blocked)
		if err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DELETE /api/admin/users/:id
func (a *App) DeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSelf(c, c.Param("id")) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot delete yourself"})
			return
		}
		id, ok := paramObjectID(c, "id")
		if !ok {
			return
		}

		if err := a.Users.Delete(c.Request.Context(), id); err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
