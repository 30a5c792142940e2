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

// announcementPreviewLen is how much of an announcement makes it into the
// notification message before truncation
const announcementPreviewLen = 50

// Classroom exported for testing purposes
type Classroom struct {
	DB  databases.ClassroomDatabase
	NDB databases.NotificationDatabase
}

// announcementMessage builds the fan-out message for a posted announcement:
// the first 50 characters with a trailing ellipsis when truncated
func announcementMessage(text string) string {
	runes := []rune(text)
	if len(runes) <= announcementPreviewLen {
		return text
	}
	return string(runes[:announcementPreviewLen]) + "..."
}

// assignmentMessage builds the fan-out message for a new assignment
func assignmentMessage(a models.Assignment) string {
	return fmt.Sprintf("%s - Due: %s", a.Title, a.DueDate)
}

// referenceNoteMessage builds the fan-out message for a new reference note
func referenceNoteMessage(n models.ReferenceNote) string {
	return fmt.Sprintf("%s has been added", n.Title)
}

// ClassroomsHandler returns all classrooms, or just one teacher's when the
// teacherId query parameter is set
func (c Classroom) ClassroomsHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if teacherID := r.URL.Query().Get("teacherId"); teacherID != "" {
		filter = bson.M{"teacherId": teacherID}
	}

	dbResp, err := c.DB.Find(r.Context(), filter)
	if err != nil {
		config.ErrorStatus("failed to get classrooms", http.StatusNotFound, w, err)
		return
	}
	// Because the frontend requires that the data elements inside models.Classroom
	// exist, if len == 0 then we will just return an empty data object
	if len(dbResp) == 0 {
		dbResp = []models.Classroom{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ClassroomByIDHandler returns a classroom by ID
func (c Classroom) ClassroomByIDHandler(w http.ResponseWriter, r *http.Request) {
	classroomID := mux.Vars(r)["classroom_id"]

	zap.S().Debugf("classroom_id: %v", classroomID)

	dbResp, err := c.DB.FindOne(r.Context(), bson.M{"_id": classroomID})
	if err != nil {
		config.ErrorStatus("failed to get classroom by ID", http.StatusNotFound, w, err)
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

// CreateClassroomHandler creates a new classroom with an empty roster
func (c Classroom) CreateClassroomHandler(w http.ResponseWriter, r *http.Request) {
	req := models.CreateClassroomRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	classroom := models.Classroom{
		ID:             fmt.Sprintf("class_%d", time.Now().UnixMilli()),
		Subject:        req.Subject,
		TeacherID:      req.TeacherID,
		TeacherName:    req.TeacherName,
		TeacherEmail:   req.TeacherEmail,
		Students:       []models.Enrollment{},
		Announcements:  []string{},
		Assignments:    []models.Assignment{},
		ReferenceNotes: []models.ReferenceNote{},
		CreatedAt:      primitive.NewDateTimeFromTime(time.Now()),
	}

	_, err = c.DB.InsertOne(r.Context(), classroom)
	if err != nil {
		config.ErrorStatus("failed to create classroom", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(classroom)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ClassroomStudentsHandler returns the classroom roster
func (c Classroom) ClassroomStudentsHandler(w http.ResponseWriter, r *http.Request) {
	classroomID := mux.Vars(r)["classroom_id"]

	dbResp, err := c.DB.FindOne(r.Context(), bson.M{"_id": classroomID})
	if err != nil {
		config.ErrorStatus("failed to get classroom by ID", http.StatusNotFound, w, err)
		return
	}

	students := dbResp.Students
	if students == nil {
		students = []models.Enrollment{}
	}

	b, err := json.Marshal(students)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// EnrollStudentHandler adds a student to the classroom roster. Enrolling
// twice is a no-op.
func (c Classroom) EnrollStudentHandler(w http.ResponseWriter, r *http.Request) {
	classroomID := mux.Vars(r)["classroom_id"]

	req := models.EnrollStudentRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	enrollment := models.Enrollment{
		ID:       req.StudentID,
		Name:     req.StudentName,
		Email:    req.StudentEmail,
		JoinedAt: time.Now().Format(time.RFC3339),
	}

	// $ne guard keeps re-enrollment from duplicating the roster entry
	filter := bson.M{"_id": classroomID, "students.id": bson.M{"$ne": req.StudentID}}
	update := bson.M{"$push": bson.M{"students": enrollment}}
	_, err = c.DB.UpdateOne(r.Context(), filter, update)
	if err != nil {
		config.ErrorStatus("failed to enroll student", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "student enrolled"}`))
}

// AddAnnouncementHandler posts an announcement to a classroom and notifies
// every enrolled student
func (c Classroom) AddAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	classroomID := mux.Vars(r)["classroom_id"]

	req := models.CreateAnnouncementRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	classroom, err := c.DB.FindOne(r.Context(), bson.M{"_id": classroomID})
	if err != nil {
		config.ErrorStatus("failed to get classroom by ID", http.StatusNotFound, w, err)
		return
	}

	// newest first, matching the classroom detail view
	update := bson.M{"$push": bson.M{"announcements": bson.M{"$each": []string{req.Text}, "$position": 0}}}
	_, err = c.DB.UpdateOne(r.Context(), bson.M{"_id": classroomID}, update)
	if err != nil {
		config.ErrorStatus("failed to add announcement", http.StatusInternalServerError, w, err)
		return
	}

	notifyRoster(r.Context(), c.NDB, classroom.Students, "New Announcement", announcementMessage(req.Text))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "announcement added"}`))
}

// AddAssignmentHandler adds an assignment to a classroom and notifies every
// enrolled student
func (c Classroom) AddAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	classroomID := mux.Vars(r)["classroom_id"]

	req := models.CreateAssignmentRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	classroom, err := c.DB.FindOne(r.Context(), bson.M{"_id": classroomID})
	if err != nil {
		config.ErrorStatus("failed to get classroom by ID", http.StatusNotFound, w, err)
		return
	}

	assignment := models.Assignment{
		ID:          fmt.Sprintf("a%d", time.Now().UnixMilli()),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	update := bson.M{"$push": bson.M{"assignments": assignment}}
	_, err = c.DB.UpdateOne(r.Context(), bson.M{"_id": classroomID}, update)
	if err != nil {
		config.ErrorStatus("failed to add assignment", http.StatusInternalServerError, w, err)
		return
	}

	notifyRoster(r.Context(), c.NDB, classroom.Students, "New Assignment", assignmentMessage(assignment))

	b, err := json.Marshal(assignment)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AddReferenceNoteHandler adds a reference note to a classroom and notifies
// every enrolled student
func (c Classroom) AddReferenceNoteHandler(w http.ResponseWriter, r *http.Request) {
	classroomID := mux.Vars(r)["classroom_id"]

	req := models.CreateReferenceNoteRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid request", http.StatusBadRequest, w, err)
		return
	}

	classroom, err := c.DB.FindOne(r.Context(), bson.M{"_id": classroomID})
	if err != nil {
		config.ErrorStatus("failed to get classroom by ID", http.StatusNotFound, w, err)
		return
	}

	note := models.ReferenceNote{
		ID:      fmt.Sprintf("n%d", time.Now().UnixMilli()),
		Title:   req.Title,
		Content: req.Content,
	}

	update := bson.M{"$push": bson.M{"referenceNotes": note}}
	_, err = c.DB.UpdateOne(r.Context(), bson.M{"_id": classroomID}, update)
	if err != nil {
		config.ErrorStatus("failed to add reference note", http.StatusInternalServerError, w, err)
		return
	}

	notifyRoster(r.Context(), c.NDB, classroom.Students, "New Reference Note", referenceNoteMessage(note))

	b, err := json.Marshal(note)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
