package database

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/princinho/pepinterview/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type InterviewRepository struct {
	col *mongo.Collection
}

var newestDateFirst = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}

// lookupCandidate resolves the user reference into "candidate", keeping only
// the listed user fields.
func lookupCandidate(fields ...string) []bson.D {
	project := bson.D{}
	for _, f := range fields {
		project = append(project, bson.E{Key: f, Value: 1})
	}
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UsersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: project}}}},
			{Key: "as", Value: "candidate"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$candidate"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (r *InterviewRepository) Create(ctx context.Context, iv *models.Interview) error {
	if iv.ID.IsZero() {
		iv.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, iv)
	return translate(err)
}

func (r *InterviewRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Interview, error) {
	var iv models.Interview
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&iv); err != nil {
		return nil, translate(err)
	}
	return &iv, nil
}

func (r *InterviewRepository) aggregateDetails(ctx context.Context, pipeline mongo.Pipeline) ([]models.InterviewDetail, error) {
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.InterviewDetail, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InterviewRepository) FindDetail(ctx context.Context, id bson.ObjectID) (*models.InterviewDetail, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}}}
	pipeline = append(pipeline, lookupCandidate("fullName", "email")...)

	items, err := r.aggregateDetails(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

func (r *InterviewRepository) ListAll(ctx context.Context) ([]models.InterviewDetail, error) {
	pipeline := mongo.Pipeline{{{Key: "$sort", Value: newestDateFirst}}}
	pipeline = append(pipeline, lookupCandidate("fullName", "email", "role")...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *InterviewRepository) find(ctx context.Context, filter bson.M) ([]models.Interview, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(newestDateFirst))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Interview, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InterviewRepository) ListByUser(ctx context.Context, userID bson.ObjectID, status models.InterviewStatus) ([]models.Interview, error) {
	filter := bson.M{"user": userID}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

// ListByInterviewer matches the interviewer name case-insensitively.
func (r *InterviewRepository) ListByInterviewer(ctx context.Context, interviewer string) ([]models.Interview, error) {
	pattern := "^" + regexp.QuoteMeta(strings.TrimSpace(interviewer)) + "$"
	return r.find(ctx, bson.M{"interviewer": bson.M{"$regex": pattern, "$options": "i"}})
}

func (r *InterviewRepository) Update(ctx context.Context, id bson.ObjectID, u models.InterviewUpdate) (*models.Interview, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Role != nil {
		set["role"] = *u.Role
	}
	if u.Company != nil {
		set["company"] = *u.Company
	}
	if u.Date != nil {
		set["date"] = *u.Date
	}
	if u.Time != nil {
		set["time"] = *u.Time
	}
	if u.Duration != nil {
		set["duration"] = *u.Duration
	}
	if u.Mode != nil {
		set["mode"] = *u.Mode
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.MeetingLink != nil {
		set["meetingLink"] = *u.MeetingLink
	}
	if u.Platform != nil {
		set["platform"] = *u.Platform
	}
	if u.Interviewer != nil {
		set["interviewer"] = *u.Interviewer
	}
	if u.InterviewerEmail != nil {
		set["interviewerEmail"] = *u.InterviewerEmail
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if u.Outcome != nil {
		set["outcome"] = *u.Outcome
	}
	if u.Notes != nil {
		set["notes"] = *u.Notes
	}
	if u.Feedback != nil {
		set["feedback"] = *u.Feedback
	}
	if u.FeedbackVisibleToCandidate != nil {
		set["feedbackVisibleToCandidate"] = *u.FeedbackVisibleToCandidate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var iv models.Interview
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&iv); err != nil {
		return nil, translate(err)
	}
	return &iv, nil
}
