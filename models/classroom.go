package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Classroom holds the structure for the classrooms collection in mongo
type Classroom struct {
	ID             string             `json:"id" bson:"_id"`
	Subject        string             `json:"subject" bson:"subject"`
	TeacherID      string             `json:"teacherId" bson:"teacherId"`
	TeacherName    string             `json:"teacherName" bson:"teacherName"`
	TeacherEmail   string             `json:"teacherEmail" bson:"teacherEmail"`
	Students       []Enrollment       `json:"students" bson:"students"`
	Announcements  []string           `json:"announcements" bson:"announcements"`
	Assignments    []Assignment       `json:"assignments" bson:"assignments"`
	ReferenceNotes []ReferenceNote    `json:"referenceNotes" bson:"referenceNotes"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// Enrollment is one roster entry inside a classroom document
type Enrollment struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	JoinedAt string `json:"joinedAt" bson:"joinedAt"`
}

// Assignment is one assignment entry inside a classroom document
type Assignment struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	DueDate     string `json:"dueDate" bson:"dueDate"`
}

// ReferenceNote is one reference note entry inside a classroom document
type ReferenceNote struct {
	ID      string `json:"id" bson:"id"`
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
}

// CreateClassroomRequest is the payload for creating a classroom
type CreateClassroomRequest struct {
	Subject      string `json:"subject" validate:"required"`
	TeacherID    string `json:"teacherId" validate:"required"`
	TeacherName  string `json:"teacherName" validate:"required"`
	TeacherEmail string `json:"teacherEmail" validate:"required,email"`
}

// EnrollStudentRequest is the payload for adding a student to a roster
type EnrollStudentRequest struct {
	StudentID    string `json:"studentId" validate:"required"`
	StudentName  string `json:"studentName" validate:"required"`
	StudentEmail string `json:"studentEmail" validate:"required,email"`
}

// CreateAnnouncementRequest is the payload for posting an announcement
type CreateAnnouncementRequest struct {
	Text string `json:"text" validate:"required"`
}

// CreateAssignmentRequest is the payload for adding an assignment
type CreateAssignmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required"`
}

// CreateReferenceNoteRequest is the payload for adding a reference note
type CreateReferenceNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}
