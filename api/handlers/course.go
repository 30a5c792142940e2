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

	"github.com/studyhall/studyhall-api/catalog"
	"github.com/studyhall/studyhall-api/config"
	"github.com/studyhall/studyhall-api/databases"
	"github.com/studyhall/studyhall-api/models"
)

// Course exported for testing purposes
type Course struct {
	DB      databases.CourseDatabase
	Catalog catalog.Client
}

// CreateCourseHandler ingests a playlist as a student course. Catalog
// ingestion is the one operation that propagates its failure to the caller.
func (c Course) CreateCourseHandler(w http.ResponseWriter, r *http.Request) {
	req := models.CreateCourseRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	playlistID, err := catalog.ExtractPlaylistID(req.PlaylistURL)
	if err != nil {
		config.ErrorStatus("invalid playlist url", http.StatusBadRequest, w, err)
		return
	}

	playlist, err := c.Catalog.FetchPlaylist(r.Context(), playlistID)
	if err != nil {
		config.ErrorStatus("failed to fetch playlist", http.StatusBadGateway, w, err)
		return
	}

	course := models.Course{
		ID:         req.UserID + "_" + playlistID,
		UserID:     req.UserID,
		PlaylistID: playlistID,
		Title:      playlist.Title,
		Videos:     playlist.Videos,
		CreatedAt:  primitive.NewDateTimeFromTime(time.Now()),
	}

	// upsert so re-adding the same playlist refreshes the copy instead of
	// erroring on the duplicate key
	update := bson.M{"$set": course}
	opts := options.Update().SetUpsert(true)
	_, err = c.DB.UpdateOne(r.Context(), bson.M{"_id": course.ID}, update, opts)
	if err != nil {
		config.ErrorStatus("failed to create course", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("course created",
		"courseId", course.ID,
		"userId", req.UserID,
		"videos", len(course.Videos),
	)

	b, err := json.Marshal(course)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CoursesByUserIDHandler returns all courses belonging to a student
func (c Course) CoursesByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	dbResp, err := c.DB.Find(r.Context(), bson.M{"userId": userID})
	if err != nil {
		config.ErrorStatus("failed to get courses", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Course{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CourseByIDHandler returns a course by ID
func (c Course) CourseByIDHandler(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["course_id"]

	dbResp, err := c.DB.FindOne(r.Context(), bson.M{"_id": courseID})
	if err != nil {
		config.ErrorStatus("failed to get course by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteCourseHandler removes a student course. Completion records for the
// course are left behind; they are harmless and re-derivable.
func (c Course) DeleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["course_id"]

	err := c.DB.DeleteOne(r.Context(), bson.M{"_id": courseID})
	if err != nil {
		config.ErrorStatus("failed to delete course", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "course deleted"}`))
}
