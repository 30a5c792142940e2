package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/studyhall/studyhall-api/api/handlers"
	"github.com/studyhall/studyhall-api/databases/mocks"
	"github.com/studyhall/studyhall-api/models"
)

func TestActivity_LogActivityHandler_IncrementsToday(t *testing.T) {
	today := time.Now().Format(models.ActivityDateLayout)

	activityDB := &mocks.ActivityDatabase{}
	activityDB.On("UpdateOne", mock.Anything, bson.M{"_id": "user1_" + today}, mock.MatchedBy(func(update interface{}) bool {
		u, ok := update.(bson.M)
		if !ok {
			return false
		}
		inc, ok := u["$inc"].(bson.M)
		return ok && inc["count"] == 1
	}), mock.Anything).Return(nil, nil)

	a := handlers.Activity{DB: activityDB}

	body, _ := json.Marshal(models.LogActivityRequest{UserID: "user1"})
	req, err := http.NewRequest("POST", "/api/v1/activity", bytes.NewReader(body))
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	a.LogActivityHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"message": "activity logged"}`, rr.Body.String())
	activityDB.AssertExpectations(t)
}

func TestActivity_LogActivityHandler_WriteFailureStillOK(t *testing.T) {
	activityDB := &mocks.ActivityDatabase{}
	activityDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	a := handlers.Activity{DB: activityDB}

	body, _ := json.Marshal(models.LogActivityRequest{UserID: "user1"})
	req, err := http.NewRequest("POST", "/api/v1/activity", bytes.NewReader(body))
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	a.LogActivityHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestActivity_LogActivityHandler_MissingUserID(t *testing.T) {
	activityDB := &mocks.ActivityDatabase{}

	a := handlers.Activity{DB: activityDB}

	req, err := http.NewRequest("POST", "/api/v1/activity", bytes.NewReader([]byte(`{}`)))
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	a.LogActivityHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	activityDB.AssertNotCalled(t, "UpdateOne")
}

func TestActivity_ActivityByUserIDHandler_Success(t *testing.T) {
	activityDB := &mocks.ActivityDatabase{}
	activityDB.On("Find", mock.Anything, bson.M{"userId": "user1"}).Return([]models.ActivityLog{
		{ID: "user1_2026-03-01", UserID: "user1", Date: "2026-03-01", Count: 2},
		{ID: "user1_2026-03-03", UserID: "user1", Date: "2026-03-03", Count: 5},
	}, nil)

	a := handlers.Activity{DB: activityDB}

	req, err := http.NewRequest("GET", "/api/v1/activity/user1", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": "user1"})

	rr := httptest.NewRecorder()
	a.ActivityByUserIDHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var counts map[string]int
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counts))
	assert.Equal(t, map[string]int{"2026-03-01": 2, "2026-03-03": 5}, counts)
}

func TestActivity_ActivityByUserIDHandler_StoreFailureReturnsEmptyMapping(t *testing.T) {
	activityDB := &mocks.ActivityDatabase{}
	activityDB.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	a := handlers.Activity{DB: activityDB}

	req, err := http.NewRequest("GET", "/api/v1/activity/user1", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": "user1"})

	rr := httptest.NewRecorder()
	a.ActivityByUserIDHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{}`, rr.Body.String())
}

func TestActivity_HeatmapHandler_FullWindow(t *testing.T) {
	today := time.Now().Format(models.ActivityDateLayout)

	activityDB := &mocks.ActivityDatabase{}
	activityDB.On("Find", mock.Anything, bson.M{"userId": "user1"}).Return([]models.ActivityLog{
		{ID: "user1_" + today, UserID: "user1", Date: today, Count: 4},
	}, nil)

	a := handlers.Activity{DB: activityDB}

	req, err := http.NewRequest("GET", "/api/v1/activity/user1/heatmap", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"user_id": "user1"})

	rr := httptest.NewRecorder()
	a.HeatmapHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var weeks [][]models.HeatmapDay
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &weeks))

	total := 0
	for _, week := range weeks {
		assert.LessOrEqual(t, len(week), 7)
		total += len(week)
	}
	assert.Equal(t, 365, total)

	last := weeks[len(weeks)-1]
	cell := last[len(last)-1]
	assert.Equal(t, today, cell.Date)
	assert.Equal(t, 4, cell.Count)
	assert.Equal(t, 3, cell.Level)
}
