package router

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/princinho/pepinterview/controllers"
	"github.com/princinho/pepinterview/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var meetLinkPattern = regexp.MustCompile(`^https://meet\.google\.com/[a-z]{3}-[a-z]{4}-[a-z]{3}$`)

func (e *testEnv) seedInterview(iv models.Interview) models.Interview {
	e.t.Helper()
	if iv.ID.IsZero() {
		iv.ID = bson.NewObjectID()
	}
	if iv.Status == "" {
		iv.Status = models.InterviewStatusScheduled
	}
	if iv.Mode == "" {
		iv.Mode = models.InterviewModeOnSite
	}
	now := time.Now().UTC()
	iv.CreatedAt, iv.UpdatedAt = now, now
	e.interviews.mu.Lock()
	e.interviews.byID[iv.ID] = iv
	e.interviews.mu.Unlock()
	return iv
}

func interviewBody(extra map[string]any) map[string]any {
	body := map[string]any{
		"role":    "Backend Engineer",
		"company": "Acme",
		"date":    "2026-11-03",
		"time":    "10:00",
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func TestCandidateCreatedInterviewIsPendingApproval(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.seedUser(models.RoleCandidate, "cand@example.com", "pw")
	token := env.tokenFor(candidate)

	for _, status := range []string{"scheduled", "selected", "Completed", ""} {
		extra := map[string]any{}
		if status != "" {
			extra["status"] = status
		}
		rec := env.do(http.MethodPost, "/api/interviews", token, interviewBody(extra))
		expectStatus(t, rec, http.StatusCreated)

		body := decodeObject(t, rec)
		if body["status"] != "pending_approval" {
			t.Fatalf("status %q persisted as %v", status, body["status"])
		}
		id, _ := bson.ObjectIDFromHex(body["id"].(string))
		stored, ok := env.interviews.get(id)
		if !ok || stored.Status != models.InterviewStatusPendingApproval {
			t.Fatalf("stored = %+v", stored)
		}
		if stored.User != candidate.ID {
			t.Fatalf("userId should default to the caller")
		}
	}
}

func TestAdminCreateInterviewDefaultsAndValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(models.RoleAdmin, "admin@example.com", "pw")
	candidate := env.seedUser(models.RoleCandidate, "cand@example.com", "pw")
	token := env.tokenFor(admin)

	rec := env.do(http.MethodPost, "/api/interviews", token, interviewBody(map[string]any{"userId": candidate.ID.Hex()}))
	expectStatus(t, rec, http.StatusCreated)
	body := decodeObject(t, rec)
	if body["status"] != "scheduled" || body["mode"] != "Online" || body["duration"] != float64(60) {
		t.Fatalf("defaults not applied: %v", body)
	}
	if body["user"] != candidate.ID.Hex() {
		t.Fatalf("user = %v", body["user"])
	}
	if body["feedbackVisibleToCandidate"] != false {
		t.Fatalf("feedback should be hidden by default")
	}

	rec = env.do(http.MethodPost, "/api/interviews", token, interviewBody(map[string]any{
		"userId": candidate.ID.Hex(), "status": "Pending feedback", "mode": "on-site",
	}))
	expectStatus(t, rec, http.StatusCreated)
	body = decodeObject(t, rec)
	if body["status"] != "pending" || body["mode"] != "On-site" {
		t.Fatalf("labels not parsed: %v", body)
	}

	bad := []map[string]any{
		{"role": "", "company": "Acme", "date": "2026-11-03", "time": "10:00"},
		{"role": "Dev", "company": "Acme", "time": "10:00"},
		interviewBody(map[string]any{"status": "archived"}),
		interviewBody(map[string]any{"mode": "carrier pigeon"}),
		interviewBody(map[string]any{"date": "03/11/2026"}),
		interviewBody(map[string]any{"userId": "not-an-id"}),
	}
	for _, b := range bad {
		expectStatus(t, env.do(http.MethodPost, "/api/interviews", token, b), http.StatusBadRequest)
	}
}

func TestOnlineInterviewGetsMeetingLink(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(models.RoleAdmin, "admin@example.com", "pw")
	token := env.tokenFor(admin)

	cases := []struct {
		name         string
		extra        map[string]any
		wantLink     string
		wantPlatform string
		generated    bool
	}{
		{"default mode", map[string]any{}, "", "Google Meet", true},
		{"lowercase online", map[string]any{"mode": "online"}, "", "Google Meet", true},
		{"platform kept", map[string]any{"mode": "Online", "platform": "Zoom"}, "", "Zoom", true},
		{"link supplied", map[string]any{"meetingLink": "https://zoom.us/j/1"}, "https://zoom.us/j/1", "", false},
		{"on-site", map[string]any{"mode": "On-site"}, "", "", false},
	}
	for _, tc := range cases {
		rec := env.do(http.MethodPost, "/api/interviews", token, interviewBody(tc.extra))
		expectStatus(t, rec, http.StatusCreated)
		body := decodeObject(t, rec)

		link, _ := body["meetingLink"].(string)
		platform, _ := body["platform"].(string)
		if tc.generated && !meetLinkPattern.MatchString(link) {
			t.Fatalf("%s: link %q does not match", tc.name, link)
		}
		if !tc.generated && link != tc.wantLink {
			t.Fatalf("%s: link = %q, want %q", tc.name, link, tc.wantLink)
		}
		if platform != tc.wantPlatform {
			t.Fatalf("%s: platform = %q, want %q", tc.name, platform, tc.wantPlatform)
		}
	}
}

func TestFeedbackRedactedOnlyInOwnList(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.seedUser(models.RoleCandidate, "cand@example.com", "pw")
	admin := env.seedUser(models.RoleAdmin, "admin@example.com", "pw")

	hidden := env.seedInterview(models.Interview{
		User: candidate.ID, Role: "Dev", Company: "Acme", Time: "10:00",
		Date:     time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		Status:   models.InterviewStatusCompleted,
		Feedback: "needs more practice",
	})
	env.seedInterview(models.Interview{
		User: candidate.ID, Role: "Dev", Company: "Globex", Time: "11:00",
		Date:                       time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC),
		Status:                     models.InterviewStatusSelected,
		Feedback:                   "great",
		FeedbackVisibleToCandidate: true,
	})

	listPath := "/api/interviews/user/" + candidate.ID.Hex()
	rec := env.do(http.MethodGet, listPath, env.tokenFor(candidate), nil)
	expectStatus(t, rec, http.StatusOK)
	items := decodeList(t, rec)
	if len(items) != 2 {
		t.Fatalf("got %d interviews", len(items))
	}
	if items[0]["company"] != "Globex" {
		t.Fatalf("list must be newest date first: %v", items[0]["company"])
	}
	if items[0]["feedback"] != "great" {
		t.Fatalf("released feedback missing: %v", items[0])
	}
	if _, ok := items[1]["feedback"]; ok {
		t.Fatalf("hidden feedback leaked in own list: %v", items[1])
	}

	rec = env.do(http.MethodGet, listPath, env.tokenFor(admin), nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeList(t, rec)[1]["feedback"]; got != "needs more practice" {
		t.Fatalf("admin view should keep feedback, got %v", got)
	}

	rec = env.do(http.MethodGet, "/api/interviews/"+hidden.ID.Hex(), env.tokenFor(candidate), nil)
	expectStatus(t, rec, http.StatusOK)
	detail := decodeObject(t, rec)
	if detail["feedback"] != "needs more practice" {
		t.Fatalf("by-id route returns the unredacted document, got %v", detail["feedback"])
	}
	populated, ok := detail["user"].(map[string]any)
	if !ok || populated["email"] != "cand@example.com" || populated["fullName"] != candidate.FullName {
		t.Fatalf("user not populated: %v", detail["user"])
	}

	rec = env.do(http.MethodGet, listPath+"?status=Completed", env.tokenFor(candidate), nil)
	expectStatus(t, rec, http.StatusOK)
	if items := decodeList(t, rec); len(items) != 1 || items[0]["status"] != "completed" {
		t.Fatalf("status filter: %v", items)
	}
	expectStatus(t, env.do(http.MethodGet, listPath+"?status=bogus", env.tokenFor(candidate), nil), http.StatusBadRequest)
	expectStatus(t, env.do(http.MethodGet, "/api/interviews/"+bson.NewObjectID().Hex(), env.tokenFor(candidate), nil), http.StatusNotFound)
	expectStatus(t, env.do(http.MethodGet, "/api/interviews/xyz", env.tokenFor(candidate), nil), http.StatusBadRequest)
}

func TestUpdateInterviewAllowsAnyStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(models.RoleAdmin, "admin@example.com", "pw")
	candidate := env.seedUser(models.RoleCandidate, "cand@example.com", "pw")
	iv := env.seedInterview(models.Interview{
		User: candidate.ID, Role: "Dev", Company: "Acme", Time: "10:00",
		Date:   time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		Status: models.InterviewStatusRejected,
	})
	path := "/api/interviews/" + iv.ID.Hex()

	rec := env.do(http.MethodPut, path, env.tokenFor(admin), map[string]any{"status": "scheduled", "feedback": "ok", "outcome": "pass"})
	expectStatus(t, rec, http.StatusOK)
	body := decodeObject(t, rec)
	if body["status"] != "scheduled" || body["feedback"] != "ok" || body["outcome"] != "pass" {
		t.Fatalf("update not applied: %v", body)
	}

	rec = env.do(http.MethodPut, path, env.tokenFor(candidate), map[string]any{"status": "selected"})
	expectStatus(t, rec, http.StatusOK)
	if status := decodeObject(t, rec)["status"]; status != "pending_approval" {
		t.Fatalf("candidate update persisted %v", status)
	}

	rec = env.do(http.MethodPut, path, env.tokenFor(admin), map[string]any{"mode": "Online"})
	expectStatus(t, rec, http.StatusOK)
	body = decodeObject(t, rec)
	if !meetLinkPattern.MatchString(body["meetingLink"].(string)) || body["platform"] != "Google Meet" {
		t.Fatalf("switching to online should add a link: %v", body)
	}

	expectStatus(t, env.do(http.MethodPut, path, env.tokenFor(admin), map[string]any{"status": "nope"}), http.StatusBadRequest)
	expectStatus(t, env.do(http.MethodPut, "/api/interviews/"+bson.NewObjectID().Hex(), env.tokenFor(admin), map[string]any{"status": "scheduled"}), http.StatusNotFound)
}

func TestRescheduleAndCancelNotifyCandidate(t *testing.T) {
	mailer := &fakeMailer{}
	env := newTestEnv(t, func(a *controllers.App) { a.Mailer = mailer })
	admin := env.seedUser(models.RoleAdmin, "admin@example.com", "pw")
	candidate := env.seedUser(models.RoleCandidate, "cand@example.com", "pw")
	candidate.NotificationPrefs.EmailRescheduled = false
	env.users.put(*candidate)

	iv := env.seedInterview(models.Interview{
		User: candidate.ID, Role: "Dev", Company: "Acme", Time: "10:00",
		Date: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
	})
	path := "/api/interviews/" + iv.ID.Hex()
	token := env.tokenFor(admin)

	expectStatus(t, env.do(http.MethodPut, path, token, map[string]any{"notes": "bring laptop"}), http.StatusOK)
	if n := len(env.notifications.all()); n != 0 {
		t.Fatalf("plain edit created %d notifications", n)
	}

	expectStatus(t, env.do(http.MethodPut, path, token, map[string]any{"date": "2026-11-04", "time": "14:30"}), http.StatusOK)
	notes := env.notifications.all()
	if len(notes) != 1 || notes[0].Type != models.NotificationRescheduled || notes[0].User != candidate.ID {
		t.Fatalf("notifications = %+v", notes)
	}
	if notes[0].Link != "/user/interviews/"+iv.ID.Hex() {
		t.Fatalf("link = %q", notes[0].Link)
	}
	if len(mailer.all()) != 0 {
		t.Fatalf("reschedule mail sent despite preference")
	}

	expectStatus(t, env.do(http.MethodPut, path, token, map[string]any{"status": "Cancelled"}), http.StatusOK)
	notes = env.notifications.all()
	if len(notes) != 2 || notes[1].Type != models.NotificationCancelled {
		t.Fatalf("notifications = %+v", notes)
	}
	sent := mailer.all()
	if len(sent) != 1 || sent[0].To.Email != "cand@example.com" || sent[0].Subject != "Interview cancelled" {
		t.Fatalf("mail = %+v", sent)
	}

	// already cancelled: no repeat
	expectStatus(t, env.do(http.MethodPut, path, token, map[string]any{"status": "cancelled"}), http.StatusOK)
	if n := len(env.notifications.all()); n != 2 {
		t.Fatalf("repeat cancel notified again (%d)", n)
	}
}
