package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studyhall/studyhall-api/databases/mocks"
	"github.com/studyhall/studyhall-api/models"
)

func TestNewNotificationID(t *testing.T) {
	id := newNotificationID()
	assert.Regexp(t, regexp.MustCompile(`^notif_\d+_[0-9a-f-]{8}$`), id)

	// Concurrent fan-outs must never mint the same id
	assert.NotEqual(t, id, newNotificationID())
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		createdAt time.Time
		want      string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "Just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.Add(-48 * time.Hour), "3/8/2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := relativeTime(primitive.NewDateTimeFromTime(tt.createdAt), now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativeTimeZeroValue(t *testing.T) {
	assert.Equal(t, "", relativeTime(0, time.Now()))
}

func TestNotifyRoster_OnePerStudent(t *testing.T) {
	roster := []models.Enrollment{
		{ID: "s1", Name: "Student One"},
		{ID: "s2", Name: "Student Two"},
		{ID: "s3", Name: "Student Three"},
	}

	var mu sync.Mutex
	recipients := map[string]models.Notification{}

	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			n := args.Get(1).(models.Notification)
			mu.Lock()
			recipients[n.UserID] = n
			mu.Unlock()
		})

	notifyRoster(context.Background(), notificationDB, roster, "New Announcement", "Quiz on Friday")

	assert.Len(t, recipients, 3)
	for _, student := range roster {
		n, ok := recipients[student.ID]
		assert.True(t, ok, "missing notification for %s", student.ID)
		assert.Equal(t, "New Announcement", n.Title)
		assert.Equal(t, "Quiz on Friday", n.Message)
		assert.False(t, n.Read)
		assert.True(t, strings.HasPrefix(n.ID, "notif_"))
	}
}

func TestNotifyRoster_FailedInsertDoesNotAbortSiblings(t *testing.T) {
	roster := []models.Enrollment{
		{ID: "s1"},
		{ID: "s2"},
		{ID: "s3"},
	}

	var mu sync.Mutex
	delivered := 0

	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.UserID == "s2"
	})).Return(nil, errors.New("mocked-error"))
	notificationDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			mu.Lock()
			delivered++
			mu.Unlock()
		})

	notifyRoster(context.Background(), notificationDB, roster, "New Assignment", "Essay - Due: 2026-03-20")

	assert.Equal(t, 2, delivered)
}

func TestNotifyRoster_EmptyRoster(t *testing.T) {
	notificationDB := &mocks.NotificationDatabase{}

	notifyRoster(context.Background(), notificationDB, nil, "New Announcement", "nobody hears this")

	notificationDB.AssertNotCalled(t, "InsertOne")
}

func TestAnnouncementMessage(t *testing.T) {
	short := "Quiz moved to Friday"
	assert.Equal(t, short, announcementMessage(short))

	long := strings.Repeat("a", 80)
	got := announcementMessage(long)
	assert.Equal(t, strings.Repeat("a", 50)+"...", got)

	// Exactly at the limit passes through untouched
	exact := strings.Repeat("b", 50)
	assert.Equal(t, exact, announcementMessage(exact))
}

func TestAssignmentMessage(t *testing.T) {
	a := models.Assignment{Title: "Essay", DueDate: "2026-03-20"}
	assert.Equal(t, "Essay - Due: 2026-03-20", assignmentMessage(a))
}

func TestReferenceNoteMessage(t *testing.T) {
	n := models.ReferenceNote{Title: "Chapter 4 summary"}
	assert.Equal(t, "Chapter 4 summary has been added", referenceNoteMessage(n))
}

func TestNotification_NotificationsByUserIDHandler_NewestFirst(t *testing.T) {
	now := time.Now()
	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("Find", mock.Anything, bson.M{"userId": "user1"}).Return([]models.Notification{
		{ID: "notif_1", UserID: "user1", Title: "New Announcement", CreatedAt: primitive.NewDateTimeFromTime(now.Add(-2 * time.Hour))},
		{ID: "notif_2", UserID: "user1", Title: "New Assignment", CreatedAt: primitive.NewDateTimeFromTime(now.Add(-10 * time.Second))},
		{ID: "notif_3", UserID: "user1", Title: "New Reference Note", CreatedAt: primitive.NewDateTimeFromTime(now.Add(-30 * time.Minute))},
	}, nil)

	n := Notification{DB: notificationDB}

	req, err := http.NewRequest("GET", "/api/v1/users/user1/notifications", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": "user1"})

	rr := httptest.NewRecorder()
	n.NotificationsByUserIDHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var views []models.NotificationView
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
	assert.Len(t, views, 3)
	assert.Equal(t, "notif_2", views[0].ID)
	assert.Equal(t, "notif_3", views[1].ID)
	assert.Equal(t, "notif_1", views[2].ID)

	assert.Equal(t, "Just now", views[0].TimeAgo)
	assert.Equal(t, "30m ago", views[1].TimeAgo)
	assert.Equal(t, "2h ago", views[2].TimeAgo)
}

func TestNotification_NotificationsByUserIDHandler_Error(t *testing.T) {
	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	n := Notification{DB: notificationDB}

	req, err := http.NewRequest("GET", "/api/v1/users/user1/notifications", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": "user1"})

	rr := httptest.NewRecorder()
	n.NotificationsByUserIDHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNotification_UnreadCountHandler(t *testing.T) {
	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("CountDocuments", mock.Anything, bson.M{"userId": "user1", "read": false}).Return(int64(7), nil)

	n := Notification{DB: notificationDB}

	req, err := http.NewRequest("GET", "/api/v1/users/user1/notifications/unread-count", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": "user1"})

	rr := httptest.NewRecorder()
	n.UnreadCountHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"count":7}`, rr.Body.String())
	notificationDB.AssertExpectations(t)
}

func TestNotification_MarkReadHandler(t *testing.T) {
	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("UpdateOne", mock.Anything, bson.M{"_id": "notif_1"}, bson.M{"$set": bson.M{"read": true}}).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	n := Notification{DB: notificationDB}

	req, err := http.NewRequest("PUT", "/api/v1/notifications/notif_1/read", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"notification_id": "notif_1"})

	rr := httptest.NewRecorder()
	n.MarkReadHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	notificationDB.AssertExpectations(t)
}

func TestNotification_MarkReadHandler_MissingNotificationIsNoOp(t *testing.T) {
	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)

	n := Notification{DB: notificationDB}

	req, err := http.NewRequest("PUT", "/api/v1/notifications/notif_gone/read", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"notification_id": "notif_gone"})

	rr := httptest.NewRecorder()
	n.MarkReadHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNotification_MarkAllReadHandler(t *testing.T) {
	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("UpdateMany", mock.Anything, bson.M{"userId": "user1", "read": false}, bson.M{"$set": bson.M{"read": true}}).
		Return(&mongo.UpdateResult{MatchedCount: 4, ModifiedCount: 4}, nil)

	n := Notification{DB: notificationDB}

	req, err := http.NewRequest("PUT", "/api/v1/users/user1/notifications/read-all", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": "user1"})

	rr := httptest.NewRecorder()
	n.MarkAllReadHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	notificationDB.AssertExpectations(t)
}

func TestNotification_MarkReadHandler_StoreErrorFailsOpen(t *testing.T) {
	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	n := Notification{DB: notificationDB}

	req, err := http.NewRequest("PUT", "/api/v1/notifications/notif_1/read", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"notification_id": "notif_1"})

	rr := httptest.NewRecorder()
	n.MarkReadHandler(rr, req)

	// The dropped write never surfaces to the caller.
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"message": "notification marked read"}`, rr.Body.String())
}

func TestNotification_MarkAllReadHandler_StoreErrorFailsOpen(t *testing.T) {
	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("UpdateMany", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	n := Notification{DB: notificationDB}

	req, err := http.NewRequest("PUT", "/api/v1/users/user1/notifications/read-all", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": "user1"})

	rr := httptest.NewRecorder()
	n.MarkAllReadHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"message": "all notifications marked read"}`, rr.Body.String())
}
