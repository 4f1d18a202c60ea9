package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/princinho/pepinterview/database"
	"github.com/princinho/pepinterview/models"
	"github.com/princinho/pepinterview/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	userKey   = "user"
	userIDKey = "userID"
	roleKey   = "role"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	// browsers cannot set headers on a websocket handshake
	if websocket.IsWebSocketUpgrade(c.Request) {
		return c.Query("token")
	}
	return ""
}

// AuthMiddleware validates the bearer token and loads the caller's user record.
func AuthMiddleware(secret string, users database.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		claims, err := utils.ValidateToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		id, err := bson.ObjectIDFromHex(claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				log.Printf("auth: load user %s: %v", id.Hex(), err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}
		if user.IsBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Account is blocked"})
			return
		}

		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Set(roleKey, user.Role)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied for this role"})
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

func CurrentUserID(c *gin.Context) (bson.ObjectID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return bson.NilObjectID, false
	}
	id, ok := v.(bson.ObjectID)
	return id, ok
}

func CurrentRole(c *gin.Context) models.Role {
	v, _ := c.Get(roleKey)
	r, _ := v.(models.Role)
	return r
}
