package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/pepinterview/database"
	"github.com/princinho/pepinterview/dto"
	"github.com/princinho/pepinterview/middleware"
	"github.com/princinho/pepinterview/models"
	"github.com/princinho/pepinterview/utils"
)

const (
	resetTokenTTL       = time.Hour
	forgotPasswordReply = "If that email exists, a reset link has been sent"
)

// signupRole decides the stored role. ok is false when an admin signup
// presents the wrong secret.
func signupRole(requested, secret, configured string) (models.Role, bool) {
	switch models.Role(requested) {
	case models.RoleAdmin:
		if configured != "" && secret != configured {
			return "", false
		}
		return models.RoleAdmin, true
	case models.RoleInterviewer:
		return models.RoleInterviewer, true
	}
	return models.RoleCandidate, true
}

// POST /api/auth/signup
func (a *App) Signup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SignupDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Full name, email and password are required"})
			return
		}

		role, ok := signupRole(body.Role, body.AdminSecret, a.Config.Auth.AdminSignupSecret)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"message": "Admin signup requires a valid secret"})
			return
		}

		ctx := c.Request.Context()
		email := utils.NormalizeEmail(body.Email)
		if _, err := a.Users.FindByEmail(ctx, email); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
			return
		} else if !errors.Is(err, database.ErrNotFound) {
			respondStoreError(c, err, "")
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
			return
		}

		now := time.Now().UTC()
		user := &models.User{
			FullName:          body.FullName,
			SearchName:        utils.FoldName(body.FullName),
			Email:             email,
			PasswordHash:      hash,
			Skills:            []string{},
			Role:              role,
			NotificationPrefs: models.DefaultNotificationPrefs(),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := a.Users.Create(ctx, user); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
				return
			}
			respondStoreError(c, err, "")
			return
		}

		resp, err := a.sessionResponse("User created", user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to sign token"})
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

func (a *App) logLogin(ctx context.Context, entry models.LoginLog) {
	now := time.Now().UTC()
	entry.LoginAt = now
	entry.CreatedAt = now
	if err := a.LoginLogs.Insert(ctx, &entry); err != nil {
		log.Printf("LoginLog create error: %v", err)
	}
}

// POST /api/auth/login
func (a *App) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
			return
		}

		ctx := c.Request.Context()
		email := utils.NormalizeEmail(body.Email)
		failed := models.LoginLog{Email: email, Success: false, UserAgent: c.Request.UserAgent()}

		user, err := a.Users.FindByEmail(ctx, email)
		if err != nil {
			a.logLogin(ctx, failed)
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
				return
			}
			respondStoreError(c, err, "")
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			a.logLogin(ctx, failed)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}

		if user.IsBlocked {
			a.logLogin(ctx, failed)
			c.JSON(http.StatusForbidden, gin.H{"message": "Account is blocked"})
			return
		}

		a.logLogin(ctx, models.LoginLog{
			User:      &user.ID,
			Email:     user.Email,
			Role:      user.Role,
			Success:   true,
			UserAgent: c.Request.UserAgent(),
		})

		resp, err := a.sessionResponse("Login successful", user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to sign token"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /api/auth/forgot-password
func (a *App) ForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ForgotPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		}

		ctx := c.Request.Context()
		user, err := a.Users.FindByEmail(ctx, utils.NormalizeEmail(body.Email))
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": forgotPasswordReply})
			return
		}
		if err != nil {
			respondStoreError(c, err, "")
			return
		}

		raw, hash, err := utils.NewResetToken()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create reset token"})
			return
		}
		if err := a.Users.SetResetToken(ctx, user.ID, hash, time.Now().UTC().Add(resetTokenTTL)); err != nil {
			respondStoreError(c, err, "User not found")
			return
		}

		resetURL := a.Config.ClientURL + "/reset-password?token=" + url.QueryEscape(raw)
		if a.Mailer == nil {
			c.JSON(http.StatusOK, gin.H{"message": forgotPasswordReply, "resetUrl": resetURL})
			return
		}

		html, err := utils.RenderTemplate("password-reset.html", map[string]any{
			"Name":     user.FullName,
			"ResetURL": resetURL,
		})
		if err == nil {
			err = a.Mailer.Send(ctx, models.MailDestination{Name: user.FullName, Email: user.Email}, "Reset your password", html)
		}
		if err != nil {
			log.Printf("password reset mail to %s: %v", user.Email, err)
		}
		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordReply})
	}
}

// POST /api/auth/reset-password
func (a *App) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ResetPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Token and new password are required"})
			return
		}

		ctx := c.Request.Context()
		user, err := a.Users.FindByResetToken(ctx, utils.HashResetToken(body.Token), time.Now().UTC())
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset link"})
			return
		}
		if err != nil {
			respondStoreError(c, err, "")
			return
		}

		hash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
			return
		}
		if err := a.Users.CompletePasswordReset(ctx, user.ID, hash); err != nil {
			respondStoreError(c, err, "User not found")
			return
		}

		resp, err := a.sessionResponse("Password reset successful", user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to sign token"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GET /api/auth/me
func (a *App) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
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

// POST /api/auth/change-password
func (a *App) ChangeMyPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangeMyPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Current password and a new password of at least 6 characters are required"})
			return
		}

		user := middleware.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.CurrentPassword); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Current password is incorrect"})
			return
		}

		hash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
			return
		}
		if err := a.Users.CompletePasswordReset(c.Request.Context(), user.ID, hash); err != nil {
			respondStoreError(c, err, "User not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
