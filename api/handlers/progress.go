package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/studyhall/studyhall-api/config"
	"github.com/studyhall/studyhall-api/databases"
	"github.com/studyhall/studyhall-api/models"
)

// Progress exported for testing purposes
type Progress struct {
	DB databases.ProgressDatabase
}

// progressResponse is the wire shape for both progress endpoints
type progressResponse struct {
	CompletedVideos []string `json:"completedVideos"`
}

// ProgressHandler returns the set of completed video ids for a student and
// course. A missing record and a store failure both produce an empty set;
// progress reads never error to the caller.
func (p Progress) ProgressHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["user_id"]
	courseID := vars["course_id"]

	completed := []string{}
	dbResp, err := p.DB.FindOne(r.Context(), bson.M{"_id": models.ProgressID(userID, courseID)})
	if err != nil {
		zap.S().Debugw("no progress record, returning empty set",
			"userId", userID,
			"courseId", courseID,
			"error", err)
	} else if dbResp.CompletedVideos != nil {
		completed = dbResp.CompletedVideos
	}

	b, err := json.Marshal(progressResponse{CompletedVideos: completed})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateProgressHandler toggles one video's completion and returns the
// resulting set. The toggle is a single atomic $addToSet/$pull with upsert,
// so repeating a toggle is a no-op and concurrent toggles cannot drop each
// other's items.
func (p Progress) UpdateProgressHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["user_id"]
	courseID := vars["course_id"]

	req := models.UpdateProgressRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{
		"userId":    userID,
		"courseId":  courseID,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}
	var update bson.M
	if req.Completed {
		update = bson.M{"$set": set, "$addToSet": bson.M{"completedVideos": req.VideoID}}
	} else {
		update = bson.M{"$set": set, "$pull": bson.M{"completedVideos": req.VideoID}}
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	// Write failures are dropped, not surfaced. The caller gets an empty set
	// and the next toggle re-derives the correct state.
	completed := []string{}
	dbResp, err := p.DB.FindOneAndUpdate(r.Context(), bson.M{"_id": models.ProgressID(userID, courseID)}, update, opts)
	if err != nil {
		zap.S().Errorw("failed to update progress, dropping write",
			"userId", userID,
			"courseId", courseID,
			"videoId", req.VideoID,
			"error", err)
	} else if dbResp.CompletedVideos != nil {
		completed = dbResp.CompletedVideos
	}

	zap.S().Debugf("progress updated for %s: %v", models.ProgressID(userID, courseID), completed)

	b, err := json.Marshal(progressResponse{CompletedVideos: completed})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
