package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Course holds the structure for the studentCourses collection in mongo.
// A course is one student's copy of an externally-sourced playlist, keyed
// by "<userId>_<playlistId>".
type Course struct {
	ID         string             `json:"id" bson:"_id"`
	UserID     string             `json:"userId" bson:"userId"`
	PlaylistID string             `json:"playlistId" bson:"playlistId"`
	Title      string             `json:"title" bson:"title"`
	Videos     []Video            `json:"videos" bson:"videos"`
	CreatedAt  primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// Video is one content item inside a course, immutable once ingested
type Video struct {
	ID        string `json:"id" bson:"id"`
	Title     string `json:"title" bson:"title"`
	Thumbnail string `json:"thumbnail" bson:"thumbnail"`
}

// CreateCourseRequest is the payload for ingesting a playlist as a course
type CreateCourseRequest struct {
	UserID      string `json:"userId" validate:"required"`
	PlaylistURL string `json:"playlistUrl" validate:"required,url"`
}
