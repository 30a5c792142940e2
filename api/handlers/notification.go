package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/studyhall/studyhall-api/config"
	"github.com/studyhall/studyhall-api/databases"
	"github.com/studyhall/studyhall-api/models"
)

// fanOutConcurrency bounds the number of in-flight notification writes
// during a roster fan-out
const fanOutConcurrency = 8

// Notification exported for testing purposes
type Notification struct {
	DB databases.NotificationDatabase
}

// newNotificationID returns a process-unique notification id. The timestamp
// keeps ids roughly sortable; the uuid suffix keeps concurrent fan-outs from
// colliding.
func newNotificationID() string {
	return fmt.Sprintf("notif_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// notifyRoster creates one notification per roster member. Each recipient is
// written independently: a failed insert is logged and never aborts the
// siblings.
func notifyRoster(ctx context.Context, db databases.NotificationDatabase, roster []models.Enrollment, title, message string) {
	g := new(errgroup.Group)
	g.SetLimit(fanOutConcurrency)

	for _, student := range roster {
		student := student
		g.Go(func() error {
			notification := models.Notification{
				ID:        newNotificationID(),
				UserID:    student.ID,
				Title:     title,
				Message:   message,
				Read:      false,
				CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
			}
			if _, err := db.InsertOne(ctx, notification); err != nil {
				zap.S().Errorw("failed to create notification",
					"recipient", student.ID,
					"title", title,
					"error", err)
			}
			return nil
		})
	}

	_ = g.Wait()
}

// relativeTime formats a creation timestamp the way the inbox renders it.
// The zero value formats as an empty string.
func relativeTime(createdAt primitive.DateTime, now time.Time) string {
	if createdAt == 0 {
		return ""
	}
	diff := now.Sub(createdAt.Time())
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return createdAt.Time().Format("1/2/2006")
	}
}

// NotificationsByUserIDHandler returns the full inbox for a user, newest
// first. Entries without a timestamp sort as oldest.
func (n Notification) NotificationsByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, fmt.Errorf("user_id is required"))
		return
	}

	dbResp, err := n.DB.Find(r.Context(), bson.M{"userId": userID})
	if err != nil {
		config.ErrorStatus("failed to get notifications", http.StatusNotFound, w, err)
		return
	}

	sort.SliceStable(dbResp, func(i, j int) bool {
		return dbResp[i].CreatedAt > dbResp[j].CreatedAt
	})

	now := time.Now()
	views := make([]models.NotificationView, 0, len(dbResp))
	for _, notification := range dbResp {
		views = append(views, models.NotificationView{
			ID:        notification.ID,
			UserID:    notification.UserID,
			Title:     notification.Title,
			Message:   notification.Message,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
			TimeAgo:   relativeTime(notification.CreatedAt, now),
		})
	}

	b, err := json.Marshal(views)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UnreadCountHandler returns the number of unread notifications for a user,
// counted over the full set rather than any page
func (n Notification) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, fmt.Errorf("user_id is required"))
		return
	}

	count, err := n.DB.CountDocuments(r.Context(), bson.M{"userId": userID, "read": false})
	if err != nil {
		config.ErrorStatus("failed to count unread notifications", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.UnreadCountResponse{Count: count})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkReadHandler marks a single notification read. A missing id is a
// silent no-op so the caller can race deletion safely.
func (n Notification) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	notificationID := mux.Vars(r)["notification_id"]
	if notificationID == "" {
		config.ErrorStatus("notification_id is required", http.StatusBadRequest, w, fmt.Errorf("notification_id is required"))
		return
	}

	filter := bson.M{"_id": notificationID}
	update := bson.M{"$set": bson.M{"read": true}}
	// A failed write is logged and dropped; the flag catches up on the next
	// mark-read pass.
	res, err := n.DB.UpdateOne(r.Context(), filter, update)
	if err != nil {
		zap.S().Errorw("failed to mark notification read, dropping write",
			"notificationId", notificationID,
			"error", err)
	}
	if err == nil && res != nil && res.MatchedCount == 0 {
		zap.S().Debugw("mark read on missing notification", "notificationId", notificationID)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "notification marked read"}`))
}

// MarkAllReadHandler marks every unread notification for a user as read.
// The read flag only ever moves false to true.
func (n Notification) MarkAllReadHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, fmt.Errorf("user_id is required"))
		return
	}

	filter := bson.M{"userId": userID, "read": false}
	update := bson.M{"$set": bson.M{"read": true}}
	_, err := n.DB.UpdateMany(r.Context(), filter, update)
	if err != nil {
		zap.S().Errorw("failed to mark all notifications read, dropping write",
			"userId", userID,
			"error", err)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "all notifications marked read"}`))
}
