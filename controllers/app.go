package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/pepinterview/config"
	"github.com/princinho/pepinterview/database"
	"github.com/princinho/pepinterview/models"
	"github.com/princinho/pepinterview/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// App holds everything the handlers need. Mailer and Storage are nil when
// the matching integration is not configured.
type App struct {
	Config        config.Config
	Users         database.UserStore
	Interviews    database.InterviewStore
	Notifications database.NotificationStore
	LoginLogs     database.LoginLogStore
	Mailer        utils.Mailer
	Storage       utils.ObjectStore
	Files         *utils.FileValidator
	Hub           *NotificationHub
}

func paramObjectID(c *gin.Context, name string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return bson.NilObjectID, false
	}
	return id, true
}

// respondStoreError maps ErrNotFound to 404 and anything else to a 500 with
// the raw error text.
func respondStoreError(c *gin.Context, err error, notFound string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": notFound})
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}

func (a *App) sessionResponse(message string, user *models.User) (gin.H, error) {
	token, err := utils.GenerateAccessToken(a.Config.Auth.JWTSecret, user.ID.Hex(), string(user.Role), a.Config.Auth.JWTExpires)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"message": message,
		"token":   token,
		"user":    user.Summary(),
	}, nil
}
