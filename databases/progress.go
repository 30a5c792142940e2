package databases

// go generate: mockery --name ProgressDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall/studyhall-api/models"
)

const progressCollectionName = "videoProgress"

// ProgressDatabase contains the methods to use with the video progress
// database
type ProgressDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.VideoProgress, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.VideoProgress, error)
}

type progressDatabase struct {
	db DatabaseHelper
}

// NewProgressDatabase initializes a new instance of progress database with
// the provided db connection
func NewProgressDatabase(db DatabaseHelper) ProgressDatabase {
	return &progressDatabase{
		db: db,
	}
}

func (p *progressDatabase) FindOne(ctx context.Context, filter interface{}) (*models.VideoProgress, error) {
	progress := &models.VideoProgress{}
	err := p.db.Collection(progressCollectionName).FindOne(ctx, filter).Decode(&progress)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (p *progressDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.VideoProgress, error) {
	progress := &models.VideoProgress{}
	err := p.db.Collection(progressCollectionName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&progress)
	if err != nil {
		return nil, err
	}
	return progress, nil
}
