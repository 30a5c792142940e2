package databases

// go generate: mockery --name ActivityDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall/studyhall-api/models"
)

const activityCollectionName = "activityLogs"

// ActivityDatabase contains the methods to use with the activity log database
type ActivityDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ActivityLog, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

type activityDatabase struct {
	db DatabaseHelper
}

// NewActivityDatabase initializes a new instance of activity database with
// the provided db connection
func NewActivityDatabase(db DatabaseHelper) ActivityDatabase {
	return &activityDatabase{
		db: db,
	}
}

func (a *activityDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	cur, err := a.db.Collection(activityCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&logs)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (a *activityDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return a.db.Collection(activityCollectionName).UpdateOne(ctx, filter, update, opts...)
}
