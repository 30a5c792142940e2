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

// Note exported for testing purposes
type Note struct {
	DB databases.NoteDatabase
}

// noteResponse is the wire shape for the note endpoints
type noteResponse struct {
	Content string `json:"content"`
}

// NoteHandler returns the student's note for one video. A missing note or a
// store failure produces empty content.
func (n Note) NoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	noteID := models.NoteID(vars["user_id"], vars["course_id"], vars["video_id"])

	content := ""
	dbResp, err := n.DB.FindOne(r.Context(), bson.M{"_id": noteID})
	if err != nil {
		zap.S().Debugw("no note found, returning empty content",
			"noteId", noteID,
			"error", err)
	} else {
		content = dbResp.Content
	}

	b, err := json.Marshal(noteResponse{Content: content})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SaveNoteHandler saves the student's note for one video, creating the
// document on first save
func (n Note) SaveNoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["user_id"]
	courseID := vars["course_id"]
	videoID := vars["video_id"]

	req := models.SaveNoteRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	filter := bson.M{"_id": models.NoteID(userID, courseID, videoID)}
	update := bson.M{"$set": bson.M{
		"userId":    userID,
		"courseId":  courseID,
		"videoId":   videoID,
		"content":   req.Content,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}}
	// A failed save is logged and dropped; the editor keeps its local copy
	// and re-saves on the next keystroke.
	opts := options.Update().SetUpsert(true)
	_, err = n.DB.UpdateOne(r.Context(), filter, update, opts)
	if err != nil {
		zap.S().Errorw("failed to save note, dropping write",
			"noteId", models.NoteID(userID, courseID, videoID),
			"error", err)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "note saved"}`))
}
