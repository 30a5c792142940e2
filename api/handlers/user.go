package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/studyhall/studyhall-api/config"
	"github.com/studyhall/studyhall-api/databases"
	"github.com/studyhall/studyhall-api/models"
)

// User exported for testing purposes
type User struct {
	DB databases.UserDatabase
}

// roleResponse is the wire shape for the role endpoint
type roleResponse struct {
	Role string `json:"role"`
}

// UserHandler returns a user by ID
func (u User) UserHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	zap.S().Debugf("user_id: %v", userID)

	dbResp, err := u.DB.FindOne(r.Context(), bson.M{"_id": userID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
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

// RoleHandler returns the user's role. A missing user or a store failure
// resolves to the student default rather than an error.
func (u User) RoleHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, fmt.Errorf("user_id is required"))
		return
	}

	role := models.DefaultRole
	dbResp, err := u.DB.FindOne(r.Context(), bson.M{"_id": userID})
	if err != nil {
		zap.S().Debugw("failed to get user role, using default",
			"userId", userID,
			"error", err)
	} else if dbResp.Role != "" {
		role = dbResp.Role
	}

	b, err := json.Marshal(roleResponse{Role: role})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SetRoleHandler updates the user's role
func (u User) SetRoleHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	req := models.SetRoleRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	filter := bson.M{"_id": userID}
	update := bson.M{"$set": bson.M{
		"role":      req.Role,
		"lastLogin": primitive.NewDateTimeFromTime(time.Now()),
	}}
	_, err = u.DB.UpdateOne(r.Context(), filter, update)
	if err != nil {
		config.ErrorStatus("failed to set user role", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "role updated"}`))
}

// UpdateNameHandler updates the user's display name
func (u User) UpdateNameHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	req := models.UpdateNameRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	filter := bson.M{"_id": userID}
	update := bson.M{"$set": bson.M{"name": req.Name}}
	_, err = u.DB.UpdateOne(r.Context(), filter, update)
	if err != nil {
		config.ErrorStatus("failed to update name", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "name updated"}`))
}
