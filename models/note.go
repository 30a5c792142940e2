package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// StudentNote holds the structure for the studentNotes collection in mongo,
// keyed by "<userId>_<courseId>_<videoId>"
type StudentNote struct {
	ID        string             `json:"id" bson:"_id"`
	UserID    string             `json:"userId" bson:"userId"`
	CourseID  string             `json:"courseId" bson:"courseId"`
	VideoID   string             `json:"videoId" bson:"videoId"`
	Content   string             `json:"content" bson:"content"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// SaveNoteRequest is the payload for saving a per-video note
type SaveNoteRequest struct {
	Content string `json:"content"`
}

// NoteID builds the note document key for a student, course and video
func NoteID(userID, courseID, videoID string) string {
	return userID + "_" + courseID + "_" + videoID
}
