package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo. Documents are
// keyed by the opaque identifier issued by the auth collaborator.
type User struct {
	ID           string             `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PhotoURL     string             `json:"photoURL" bson:"photoURL"`
	Role         string             `json:"role" bson:"role"`
	PasswordHash string             `json:"-" bson:"passwordHash,omitempty"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
	LastLogin    primitive.DateTime `json:"lastLogin" bson:"lastLogin"`
}

// DefaultRole is applied whenever a user document is missing or the role
// lookup fails (fail-open).
const DefaultRole = "student"

// SetRoleRequest is the payload for updating a user role
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student teacher"`
}

// UpdateNameRequest is the payload for updating a user's display name
type UpdateNameRequest struct {
	Name string `json:"name" validate:"required"`
}
