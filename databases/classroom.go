package databases

// go generate: mockery --name ClassroomDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall/studyhall-api/models"
)

const classroomCollectionName = "classrooms"

// ClassroomDatabase contains the methods to use with the classroom database
type ClassroomDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Classroom, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Classroom, error)
	InsertOne(ctx context.Context, classroom models.Classroom, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

type classroomDatabase struct {
	db DatabaseHelper
}

// NewClassroomDatabase initializes a new instance of classroom database with
// the provided db connection
func NewClassroomDatabase(db DatabaseHelper) ClassroomDatabase {
	return &classroomDatabase{
		db: db,
	}
}

func (c *classroomDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Classroom, error) {
	classroom := &models.Classroom{}
	err := c.db.Collection(classroomCollectionName).FindOne(ctx, filter).Decode(&classroom)
	if err != nil {
		return nil, err
	}
	return classroom, nil
}

func (c *classroomDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Classroom, error) {
	var classrooms []models.Classroom
	cur, err := c.db.Collection(classroomCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&classrooms)
	if err != nil {
		return nil, err
	}
	return classrooms, nil
}

func (c *classroomDatabase) InsertOne(ctx context.Context, classroom models.Classroom, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := c.db.Collection(classroomCollectionName).InsertOne(ctx, classroom, opts...)
	return res, err
}

func (c *classroomDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(classroomCollectionName).UpdateOne(ctx, filter, update, opts...)
}
