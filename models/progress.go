package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// VideoProgress holds the structure for the videoProgress collection in
// mongo, keyed by "<userId>_<courseId>". CompletedVideos carries set
// semantics: the store layer adds and removes entries with $addToSet/$pull
// so the list never holds duplicates.
type VideoProgress struct {
	ID              string             `json:"id" bson:"_id"`
	UserID          string             `json:"userId" bson:"userId"`
	CourseID        string             `json:"courseId" bson:"courseId"`
	CompletedVideos []string           `json:"completedVideos" bson:"completedVideos"`
	UpdatedAt       primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// UpdateProgressRequest is the payload for toggling one video's completion
type UpdateProgressRequest struct {
	VideoID   string `json:"videoId" validate:"required"`
	Completed bool   `json:"completed"`
}

// ProgressID builds the progress document key for a student and course
func ProgressID(userID, courseID string) string {
	return userID + "_" + courseID
}
