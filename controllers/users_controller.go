package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/pepinterview/dto"
	"github.com/princinho/pepinterview/models"
	"github.com/princinho/pepinterview/utils"
)

// GET /api/users/:id
func (a *App) GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return
		}
		user, err := a.Users.FindByID(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func profileUpdateFromDTO(body dto.UpdateProfileDTO) models.ProfileUpdate {
	p := models.ProfileUpdate{
		FullName:          body.FullName,
		Phone:             body.Phone,
		LinkedIn:          body.LinkedIn,
		CurrentRole:       body.CurrentRole,
		Experience:        body.Experience,
		PreferredLocation: body.PreferredLocation,
		Bio:               body.Bio,
		Skills:            body.Skills,
		ResumeURL:         body.ResumeURL,
		NotificationPrefs: body.NotificationPrefs,
	}
	if p.FullName != nil {
		name := strings.TrimSpace(*p.FullName)
		folded := utils.FoldName(name)
		p.FullName = &name
		p.SearchName = &folded
	}
	if p.Skills != nil && *p.Skills == nil {
		empty := []string{}
		p.Skills = &empty
	}
	return p
}

// PUT /api/users/:id
func (a *App) UpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return
		}

		var body dto.UpdateProfileDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		ctx := c.Request.Context()
		update := profileUpdateFromDTO(body)
		if update.IsEmpty() {
			user, err := a.Users.FindByID(ctx, id)
			if err != nil {
				respondStoreError(c, err, "User not found")
				return
			}
			c.JSON(http.StatusOK, user)
			return
		}

		user, err := a.Users.UpdateProfile(ctx, id, update)
		if err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST /api/users/:id/resume (multipart field "resume")
func (a *App) UploadResume() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.Storage == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "File uploads are not configured"})
			return
		}

		id, ok := paramObjectID(c, "id")
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("resume")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "resume file is required"})
			return
		}

		mimeType, err := a.Files.ValidateFile(fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		ctx := c.Request.Context()
		user, err := a.Users.FindByID(ctx, id)
		if err != nil {
			respondStoreError(c, err, "User not found")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "failed to read upload"})
			return
		}
		defer file.Close()

		publicURL, err := a.Storage.Upload(ctx, utils.ResumeObjectName(id.Hex(), fileHeader.Filename), mimeType, file)
		if err != nil {
			log.Printf("resume upload for %s: %v", id.Hex(), err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		updated, err := a.Users.UpdateProfile(ctx, id, models.ProfileUpdate{ResumeURL: &publicURL})
		if err != nil {
			respondStoreError(c, err, "User not found")
			return
		}

		if user.ResumeURL != "" && user.ResumeURL != publicURL {
			if name, err := a.Storage.ObjectName(user.ResumeURL); err == nil {
				if err := a.Storage.Delete(ctx, name); err != nil {
					log.Printf("delete old resume %s: %v", name, err)
				}
			}
		}

		c.JSON(http.StatusOK, updated)
	}
}
