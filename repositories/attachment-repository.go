package repositories

import (
	"context"

	"task-management/backend/errs"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AttachmentRepository struct {
	liveCollection[models.AttachmentFile]
}

func NewAttachmentRepository(db *mongo.Database) *AttachmentRepository {
	return &AttachmentRepository{liveCollection[models.AttachmentFile]{
		coll:     db.Collection(attachmentsCollection),
		notFound: errs.ErrAttachmentNotFound,
	}}
}

func (r *AttachmentRepository) Insert(ctx context.Context, file *models.AttachmentFile) error {
	return r.insert(ctx, file)
}

func (r *AttachmentRepository) FindLive(ctx context.Context, id primitive.ObjectID) (*models.AttachmentFile, error) {
	return r.findLive(ctx, id)
}

func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.AttachmentFile, error) {
	return r.findAllLive(ctx, bson.M{"taskId": taskID}, byCreation())
}

func (r *AttachmentRepository) Replace(ctx context.Context, file *models.AttachmentFile) error {
	return r.replace(ctx, file.ID, file)
}

func (r *AttachmentRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.softDelete(ctx, id)
}
