package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studyhall/studyhall-api/api/handlers"
	"github.com/studyhall/studyhall-api/databases/mocks"
	"github.com/studyhall/studyhall-api/models"
)

func TestClassroom_ClassroomsHandler_EmptyResult(t *testing.T) {
	classroomDB := &mocks.ClassroomDatabase{}
	classroomDB.On("Find", mock.Anything, mock.Anything).Return(nil, nil)

	c := handlers.Classroom{DB: classroomDB}

	req, err := http.NewRequest("GET", "/api/v1/classrooms", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	c.ClassroomsHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `[]`, rr.Body.String())
}

func TestClassroom_ClassroomsHandler_FiltersByTeacher(t *testing.T) {
	classroomDB := &mocks.ClassroomDatabase{}
	classroomDB.On("Find", mock.Anything, bson.M{"teacherId": "t1"}).Return([]models.Classroom{
		{ID: "class_1", Subject: "Physics", TeacherID: "t1"},
	}, nil)

	c := handlers.Classroom{DB: classroomDB}

	req, err := http.NewRequest("GET", "/api/v1/classrooms?teacherId=t1", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	c.ClassroomsHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var listed []models.Classroom
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
	assert.Equal(t, "t1", listed[0].TeacherID)
	classroomDB.AssertExpectations(t)
}

func TestClassroom_CreateClassroomHandler(t *testing.T) {
	classroomDB := &mocks.ClassroomDatabase{}
	classroomDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(classroom models.Classroom) bool {
		return classroom.Subject == "Physics" &&
			classroom.TeacherID == "t1" &&
			len(classroom.Students) == 0 &&
			len(classroom.Announcements) == 0
	})).Return(nil, nil)

	c := handlers.Classroom{DB: classroomDB}

	body, _ := json.Marshal(models.CreateClassroomRequest{
		Subject:      "Physics",
		TeacherID:    "t1",
		TeacherName:  "Ada Teacher",
		TeacherEmail: "ada@school.edu",
	})
	req, err := http.NewRequest("POST", "/api/v1/classroom", bytes.NewReader(body))
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	c.CreateClassroomHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var created models.Classroom
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Physics", created.Subject)
	assert.NotEmpty(t, created.ID)
	classroomDB.AssertExpectations(t)
}

func TestClassroom_CreateClassroomHandler_InvalidEmail(t *testing.T) {
	classroomDB := &mocks.ClassroomDatabase{}

	c := handlers.Classroom{DB: classroomDB}

	body, _ := json.Marshal(models.CreateClassroomRequest{
		Subject:      "Physics",
		TeacherID:    "t1",
		TeacherName:  "Ada Teacher",
		TeacherEmail: "not-an-email",
	})
	req, err := http.NewRequest("POST", "/api/v1/classroom", bytes.NewReader(body))
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	c.CreateClassroomHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	classroomDB.AssertNotCalled(t, "InsertOne")
}

func TestClassroom_EnrollStudentHandler_GuardsDuplicates(t *testing.T) {
	classroomDB := &mocks.ClassroomDatabase{}
	classroomDB.On("UpdateOne", mock.Anything, bson.M{"_id": "class_1", "students.id": bson.M{"$ne": "s1"}}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	c := handlers.Classroom{DB: classroomDB}

	body, _ := json.Marshal(models.EnrollStudentRequest{
		StudentID:    "s1",
		StudentName:  "Student One",
		StudentEmail: "s1@school.edu",
	})
	req, err := http.NewRequest("POST", "/api/v1/classroom/class_1/students", bytes.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"classroom_id": "class_1"})

	rr := httptest.NewRecorder()
	c.EnrollStudentHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	classroomDB.AssertExpectations(t)
}

func TestClassroom_AddAnnouncementHandler_NotifiesRoster(t *testing.T) {
	roster := []models.Enrollment{
		{ID: "s1", Name: "Student One"},
		{ID: "s2", Name: "Student Two"},
	}

	classroomDB := &mocks.ClassroomDatabase{}
	classroomDB.On("FindOne", mock.Anything, bson.M{"_id": "class_1"}).Return(&models.Classroom{
		ID:       "class_1",
		Subject:  "Physics",
		Students: roster,
	}, nil)
	classroomDB.On("UpdateOne", mock.Anything, bson.M{"_id": "class_1"}, mock.MatchedBy(func(update interface{}) bool {
		u, ok := update.(bson.M)
		if !ok {
			return false
		}
		push, ok := u["$push"].(bson.M)
		if !ok {
			return false
		}
		inner, ok := push["announcements"].(bson.M)
		return ok && inner["$position"] == 0
	})).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	var mu sync.Mutex
	var notified []models.Notification

	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			mu.Lock()
			notified = append(notified, args.Get(1).(models.Notification))
			mu.Unlock()
		})

	c := handlers.Classroom{DB: classroomDB, NDB: notificationDB}

	longText := "This announcement is long enough that the notification preview has to cut it off somewhere"
	body, _ := json.Marshal(models.CreateAnnouncementRequest{Text: longText})
	req, err := http.NewRequest("POST", "/api/v1/classroom/class_1/announcements", bytes.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"classroom_id": "class_1"})

	rr := httptest.NewRecorder()
	c.AddAnnouncementHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, notified, 2)
	for _, n := range notified {
		assert.Equal(t, "New Announcement", n.Title)
		assert.Equal(t, longText[:50]+"...", n.Message)
	}
	classroomDB.AssertExpectations(t)
}

func TestClassroom_AddAssignmentHandler_NotifiesRoster(t *testing.T) {
	classroomDB := &mocks.ClassroomDatabase{}
	classroomDB.On("FindOne", mock.Anything, bson.M{"_id": "class_1"}).Return(&models.Classroom{
		ID:       "class_1",
		Students: []models.Enrollment{{ID: "s1"}},
	}, nil)
	classroomDB.On("UpdateOne", mock.Anything, bson.M{"_id": "class_1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	var mu sync.Mutex
	var notified []models.Notification

	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			mu.Lock()
			notified = append(notified, args.Get(1).(models.Notification))
			mu.Unlock()
		})

	c := handlers.Classroom{DB: classroomDB, NDB: notificationDB}

	body, _ := json.Marshal(models.CreateAssignmentRequest{
		Title:       "Essay",
		Description: "Write about momentum",
		DueDate:     "2026-03-20",
	})
	req, err := http.NewRequest("POST", "/api/v1/classroom/class_1/assignments", bytes.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"classroom_id": "class_1"})

	rr := httptest.NewRecorder()
	c.AddAssignmentHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, notified, 1)
	assert.Equal(t, "New Assignment", notified[0].Title)
	assert.Equal(t, "Essay - Due: 2026-03-20", notified[0].Message)
}

func TestClassroom_AddReferenceNoteHandler_NotifiesRoster(t *testing.T) {
	classroomDB := &mocks.ClassroomDatabase{}
	classroomDB.On("FindOne", mock.Anything, bson.M{"_id": "class_1"}).Return(&models.Classroom{
		ID:       "class_1",
		Students: []models.Enrollment{{ID: "s1"}},
	}, nil)
	classroomDB.On("UpdateOne", mock.Anything, bson.M{"_id": "class_1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	var mu sync.Mutex
	var notified []models.Notification

	notificationDB := &mocks.NotificationDatabase{}
	notificationDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Notification")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			mu.Lock()
			notified = append(notified, args.Get(1).(models.Notification))
			mu.Unlock()
		})

	c := handlers.Classroom{DB: classroomDB, NDB: notificationDB}

	body, _ := json.Marshal(models.CreateReferenceNoteRequest{
		Title:   "Chapter 4 summary",
		Content: "Key formulas",
	})
	req, err := http.NewRequest("POST", "/api/v1/classroom/class_1/reference-notes", bytes.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"classroom_id": "class_1"})

	rr := httptest.NewRecorder()
	c.AddReferenceNoteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, notified, 1)
	assert.Equal(t, "New Reference Note", notified[0].Title)
	assert.Equal(t, "Chapter 4 summary has been added", notified[0].Message)
}

func TestClassroom_AddAnnouncementHandler_MissingClassroom(t *testing.T) {
	classroomDB := &mocks.ClassroomDatabase{}
	classroomDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	notificationDB := &mocks.NotificationDatabase{}

	c := handlers.Classroom{DB: classroomDB, NDB: notificationDB}

	body, _ := json.Marshal(models.CreateAnnouncementRequest{Text: "hello"})
	req, err := http.NewRequest("POST", "/api/v1/classroom/class_gone/announcements", bytes.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"classroom_id": "class_gone"})

	rr := httptest.NewRecorder()
	c.AddAnnouncementHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	notificationDB.AssertNotCalled(t, "InsertOne")
}
