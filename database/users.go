package database

import (
	"context"
	"regexp"
	"time"

	"github.com/princinho/pepinterview/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserRepository struct {
	col *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, u)
	return translate(err)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return r.findOne(ctx, bson.M{
		"resetPasswordToken":   tokenHash,
		"resetPasswordExpires": bson.M{"$gt": now},
	})
}

func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	q := bson.M{}
	if filter.Role != "" {
		q["role"] = filter.Role
	}
	if filter.Query != "" {
		escaped := regexp.QuoteMeta(filter.Query)
		q["$or"] = []bson.M{
			{"searchName": bson.M{"$regex": escaped, "$options": "i"}},
			{"email": bson.M{"$regex": escaped, "$options": "i"}},
		}
	}

	cursor, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.User, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *UserRepository) updateAndReturn(ctx context.Context, id bson.ObjectID, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, p models.ProfileUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.FullName != nil {
		set["fullName"] = *p.FullName
	}
	if p.SearchName != nil {
		set["searchName"] = *p.SearchName
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.LinkedIn != nil {
		set["linkedIn"] = *p.LinkedIn
	}
	if p.CurrentRole != nil {
		set["currentRole"] = *p.CurrentRole
	}
	if p.Experience != nil {
		set["experience"] = *p.Experience
	}
	if p.PreferredLocation != nil {
		set["preferredLocation"] = *p.PreferredLocation
	}
	if p.Bio != nil {
		set["bio"] = *p.Bio
	}
	if p.Skills != nil {
		set["skills"] = *p.Skills
	}
	if p.ResumeURL != nil {
		set["resumeUrl"] = *p.ResumeURL
	}
	if p.NotificationPrefs != nil {
		set["notificationPrefs"] = *p.NotificationPrefs
	}
	return r.updateAndReturn(ctx, id, bson.M{"$set": set})
}

func (r *UserRepository) SetBlocked(ctx context.Context, id bson.ObjectID, blocked bool) (*models.User, error) {
	return r.updateAndReturn(ctx, id, bson.M{"$set": bson.M{
		"isBlocked": blocked,
		"updatedAt": time.Now().UTC(),
	}})
}

func (r *UserRepository) SetResetToken(ctx context.Context, id bson.ObjectID, tokenHash string, expires time.Time) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"resetPasswordToken":   tokenHash,
		"resetPasswordExpires": expires,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) CompletePasswordReset(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpires": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) EnsureAdmin(ctx context.Context, u *models.User) (bool, bool, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{"role": models.RoleAdmin},
		"$setOnInsert": bson.M{
			"fullName":          u.FullName,
			"searchName":        u.SearchName,
			"password":          u.PasswordHash,
			"skills":            []string{},
			"isBlocked":         false,
			"notificationPrefs": models.DefaultNotificationPrefs(),
			"createdAt":         now,
			"updatedAt":         now,
		},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"email": u.Email}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return false, false, err
	}
	return res.UpsertedCount == 1, res.UpsertedCount == 0 && res.ModifiedCount == 1, nil
}
