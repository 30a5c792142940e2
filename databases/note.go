package databases

// go generate: mockery --name NoteDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall/studyhall-api/models"
)

const noteCollectionName = "studentNotes"

// NoteDatabase contains the methods to use with the student note database
type NoteDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.StudentNote, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

type noteDatabase struct {
	db DatabaseHelper
}

// NewNoteDatabase initializes a new instance of note database with the
// provided db connection
func NewNoteDatabase(db DatabaseHelper) NoteDatabase {
	return &noteDatabase{
		db: db,
	}
}

func (n *noteDatabase) FindOne(ctx context.Context, filter interface{}) (*models.StudentNote, error) {
	note := &models.StudentNote{}
	err := n.db.Collection(noteCollectionName).FindOne(ctx, filter).Decode(&note)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (n *noteDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return n.db.Collection(noteCollectionName).UpdateOne(ctx, filter, update, opts...)
}
