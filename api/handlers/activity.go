package handlers

import (
	"encoding/json"
	"fmt"
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

// heatmapWindowDays is the trailing window rendered by the activity heatmap
const heatmapWindowDays = 365

// Activity exported for testing purposes
type Activity struct {
	DB databases.ActivityDatabase
}

// LogActivityHandler records one watch event against the caller's current
// calendar day. The increment is a single atomic $inc with upsert: the first
// event of a day creates the record with count 1, every later event adds 1.
// A failed write is logged and dropped; the caller still gets a 200.
func (a Activity) LogActivityHandler(w http.ResponseWriter, r *http.Request) {
	req := models.LogActivityRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	date := time.Now().Format(models.ActivityDateLayout)
	filter := bson.M{"_id": models.ActivityID(req.UserID, date)}
	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$set": bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
		"$setOnInsert": bson.M{
			"userId": req.UserID,
			"date":   date,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err = a.DB.UpdateOne(r.Context(), filter, update, opts)
	if err != nil {
		zap.S().Errorw("failed to log watch event",
			"userId", req.UserID,
			"date", date,
			"error", err)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "activity logged"}`))
}

// ActivityByUserIDHandler returns every day the student has a record for as
// a date-to-count mapping. A store failure produces an empty mapping rather
// than an error.
func (a Activity) ActivityByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, fmt.Errorf("user_id is required"))
		return
	}

	counts := a.activityCounts(r, userID)

	b, err := json.Marshal(counts)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// HeatmapHandler materializes the trailing 365-day window ending today as
// weekly rows of {date, count, level} cells, defaulting absent days to 0
func (a Activity) HeatmapHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, fmt.Errorf("user_id is required"))
		return
	}

	counts := a.activityCounts(r, userID)
	days := models.TrailingDays(time.Now(), heatmapWindowDays, counts)
	weeks := models.WeeklyRows(days)

	b, err := json.Marshal(weeks)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// activityCounts reads the student's full ledger, failing open to an empty
// mapping on any store error
func (a Activity) activityCounts(r *http.Request, userID string) map[string]int {
	counts := map[string]int{}
	dbResp, err := a.DB.Find(r.Context(), bson.M{"userId": userID})
	if err != nil {
		zap.S().Debugw("no activity records, returning empty mapping",
			"userId", userID,
			"error", err)
		return counts
	}
	for _, log := range dbResp {
		counts[log.Date] = log.Count
	}
	return counts
}
