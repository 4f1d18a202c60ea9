package database

import (
	"context"
	"time"

	"github.com/princinho/pepinterview/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserStore is the users collection as the handlers see it.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	UpdateProfile(ctx context.Context, id bson.ObjectID, p models.ProfileUpdate) (*models.User, error)
	SetBlocked(ctx context.Context, id bson.ObjectID, blocked bool) (*models.User, error)
	SetResetToken(ctx context.Context, id bson.ObjectID, tokenHash string, expires time.Time) error
	CompletePasswordReset(ctx context.Context, id bson.ObjectID, passwordHash string) error
	Delete(ctx context.Context, id bson.ObjectID) error
	// EnsureAdmin creates u when its email is unknown, otherwise promotes the
	// existing account to admin.
	EnsureAdmin(ctx context.Context, u *models.User) (created, promoted bool, err error)
}

type InterviewStore interface {
	Create(ctx context.Context, iv *models.Interview) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Interview, error)
	FindDetail(ctx context.Context, id bson.ObjectID) (*models.InterviewDetail, error)
	ListByUser(ctx context.Context, userID bson.ObjectID, status models.InterviewStatus) ([]models.Interview, error)
	ListByInterviewer(ctx context.Context, interviewer string) ([]models.Interview, error)
	ListAll(ctx context.Context) ([]models.InterviewDetail, error)
	Update(ctx context.Context, id bson.ObjectID, u models.InterviewUpdate) (*models.Interview, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID bson.ObjectID, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id bson.ObjectID) (*models.Notification, error)
}

type LoginLogStore interface {
	Insert(ctx context.Context, l *models.LoginLog) error
}

var (
	_ UserStore         = (*UserRepository)(nil)
	_ InterviewStore    = (*InterviewRepository)(nil)
	_ NotificationStore = (*NotificationRepository)(nil)
	_ LoginLogStore     = (*LoginLogRepository)(nil)
)
