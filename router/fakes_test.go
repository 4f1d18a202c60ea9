package router

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/princinho/pepinterview/database"
	"github.com/princinho/pepinterview/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeUsers struct {
	mu   sync.Mutex
	byID map[bson.ObjectID]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[bson.ObjectID]models.User)}
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

func (f *fakeUsers) get(id bson.ObjectID) (models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	return u, ok
}

func (f *fakeUsers) put(u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return database.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUsers) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now) {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context, filter models.UserFilter) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0)
	for _, u := range f.byID {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Query != "" && !strings.Contains(u.SearchName, filter.Query) && !strings.Contains(u.Email, filter.Query) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUsers) update(id bson.ObjectID, fn func(u *models.User)) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now().UTC()
	f.byID[id] = u
	return &u, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id bson.ObjectID, p models.ProfileUpdate) (*models.User, error) {
	return f.update(id, func(u *models.User) {
		if p.FullName != nil {
			u.FullName = *p.FullName
		}
		if p.SearchName != nil {
			u.SearchName = *p.SearchName
		}
		if p.Phone != nil {
			u.Phone = *p.Phone
		}
		if p.LinkedIn != nil {
			u.LinkedIn = *p.LinkedIn
		}
		if p.CurrentRole != nil {
			u.CurrentRole = *p.CurrentRole
		}
		if p.Experience != nil {
			u.Experience = *p.Experience
		}
		if p.PreferredLocation != nil {
			u.PreferredLocation = *p.PreferredLocation
		}
		if p.Bio != nil {
			u.Bio = *p.Bio
		}
		if p.Skills != nil {
			u.Skills = *p.Skills
		}
		if p.ResumeURL != nil {
			u.ResumeURL = *p.ResumeURL
		}
		if p.NotificationPrefs != nil {
			u.NotificationPrefs = *p.NotificationPrefs
		}
	})
}

func (f *fakeUsers) SetBlocked(_ context.Context, id bson.ObjectID, blocked bool) (*models.User, error) {
	return f.update(id, func(u *models.User) { u.IsBlocked = blocked })
}

func (f *fakeUsers) SetResetToken(_ context.Context, id bson.ObjectID, tokenHash string, expires time.Time) error {
	_, err := f.update(id, func(u *models.User) {
		u.ResetPasswordToken = tokenHash
		u.ResetPasswordExpires = &expires
	})
	return err
}

func (f *fakeUsers) CompletePasswordReset(_ context.Context, id bson.ObjectID, passwordHash string) error {
	_, err := f.update(id, func(u *models.User) {
		u.PasswordHash = passwordHash
		u.ResetPasswordToken = ""
		u.ResetPasswordExpires = nil
	})
	return err
}

func (f *fakeUsers) Delete(_ context.Context, id bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) EnsureAdmin(ctx context.Context, u *models.User) (bool, bool, error) {
	existing, err := f.FindByEmail(ctx, u.Email)
	if err != nil {
		return true, false, f.Create(ctx, u)
	}
	if existing.Role == models.RoleAdmin {
		return false, false, nil
	}
	_, err = f.update(existing.ID, func(x *models.User) { x.Role = models.RoleAdmin })
	return false, err == nil, err
}

type fakeInterviews struct {
	mu    sync.Mutex
	byID  map[bson.ObjectID]models.Interview
	users *fakeUsers
}

func newFakeInterviews(users *fakeUsers) *fakeInterviews {
	return &fakeInterviews{byID: make(map[bson.ObjectID]models.Interview), users: users}
}

func (f *fakeInterviews) get(id bson.ObjectID) (models.Interview, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.byID[id]
	return iv, ok
}

func (f *fakeInterviews) Create(_ context.Context, iv *models.Interview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if iv.ID.IsZero() {
		iv.ID = bson.NewObjectID()
	}
	f.byID[iv.ID] = *iv
	return nil
}

func (f *fakeInterviews) FindByID(_ context.Context, id bson.ObjectID) (*models.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &iv, nil
}

func (f *fakeInterviews) detail(iv models.Interview, withRole bool) models.InterviewDetail {
	d := models.InterviewDetail{Interview: iv}
	if u, ok := f.users.get(iv.User); ok {
		d.Candidate = &models.CandidateSummary{ID: u.ID, FullName: u.FullName, Email: u.Email}
		if withRole {
			d.Candidate.Role = u.Role
		}
	}
	return d
}

func (f *fakeInterviews) FindDetail(ctx context.Context, id bson.ObjectID) (*models.InterviewDetail, error) {
	iv, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := f.detail(*iv, false)
	return &d, nil
}

func (f *fakeInterviews) filter(keep func(models.Interview) bool) []models.Interview {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Interview, 0)
	for _, iv := range f.byID {
		if keep(iv) {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (f *fakeInterviews) ListByUser(_ context.Context, userID bson.ObjectID, status models.InterviewStatus) ([]models.Interview, error) {
	return f.filter(func(iv models.Interview) bool {
		return iv.User == userID && (status == "" || iv.Status == status)
	}), nil
}

func (f *fakeInterviews) ListByInterviewer(_ context.Context, interviewer string) ([]models.Interview, error) {
	return f.filter(func(iv models.Interview) bool {
		return strings.EqualFold(iv.Interviewer, interviewer)
	}), nil
}

func (f *fakeInterviews) ListAll(context.Context) ([]models.InterviewDetail, error) {
	items := f.filter(func(models.Interview) bool { return true })
	out := make([]models.InterviewDetail, 0, len(items))
	for _, iv := range items {
		out = append(out, f.detail(iv, true))
	}
	return out, nil
}

func (f *fakeInterviews) Update(_ context.Context, id bson.ObjectID, u models.InterviewUpdate) (*models.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	u.Apply(&iv)
	iv.UpdatedAt = time.Now().UTC()
	f.byID[id] = iv
	return &iv, nil
}

type fakeNotifications struct {
	mu    sync.Mutex
	items []models.Notification
}

func (f *fakeNotifications) all() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification(nil), f.items...)
}

func (f *fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = bson.NewObjectID()
	}
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID bson.ObjectID, limit int64) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, 0)
	for i := len(f.items) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if f.items[i].User == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id bson.ObjectID) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			n := f.items[i]
			return &n, nil
		}
	}
	return nil, database.ErrNotFound
}

type fakeLoginLogs struct {
	mu   sync.Mutex
	logs []models.LoginLog
}

func (f *fakeLoginLogs) all() []models.LoginLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.LoginLog(nil), f.logs...)
}

func (f *fakeLoginLogs) Insert(_ context.Context, l *models.LoginLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, *l)
	return nil
}

type sentMail struct {
	To      models.MailDestination
	Subject string
	HTML    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) Send(_ context.Context, to models.MailDestination, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

func (f *fakeMailer) all() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Upload(_ context.Context, objectName, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = data
	return fmt.Sprintf("https://files.example.com/%s", objectName), nil
}

func (f *fakeObjectStore) Delete(_ context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectName)
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeObjectStore) ObjectName(raw string) (string, error) {
	name := strings.TrimPrefix(raw, "https://files.example.com/")
	if name == raw {
		return "", fmt.Errorf("foreign url")
	}
	return name, nil
}
