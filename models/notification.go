package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification holds the structure for the notifications collection in
// mongo. Title, message and createdAt are immutable after creation; only
// the read flag transitions, and only from false to true.
type Notification struct {
	ID        string             `json:"id" bson:"_id"`
	UserID    string             `json:"userId" bson:"userId"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// NotificationView is the inbox read-model entry: the stored notification
// plus the presentation-only relative timestamp.
type NotificationView struct {
	ID        string             `json:"id"`
	UserID    string             `json:"userId"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Read      bool               `json:"read"`
	CreatedAt primitive.DateTime `json:"createdAt"`
	TimeAgo   string             `json:"timeAgo"`
}

// UnreadCountResponse is the response body for the unread counter endpoint
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
