package databases

// go generate: mockery --name CourseDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall/studyhall-api/models"
)

const courseCollectionName = "studentCourses"

// CourseDatabase contains the methods to use with the student course database
type CourseDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Course, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Course, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type courseDatabase struct {
	db DatabaseHelper
}

// NewCourseDatabase initializes a new instance of course database with the
// provided db connection
func NewCourseDatabase(db DatabaseHelper) CourseDatabase {
	return &courseDatabase{
		db: db,
	}
}

func (c *courseDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Course, error) {
	course := &models.Course{}
	err := c.db.Collection(courseCollectionName).FindOne(ctx, filter).Decode(&course)
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (c *courseDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Course, error) {
	var courses []models.Course
	cur, err := c.db.Collection(courseCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&courses)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *courseDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(courseCollectionName).UpdateOne(ctx, filter, update, opts...)
}

func (c *courseDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(courseCollectionName).DeleteOne(ctx, filter, opts...)
}
