package repositories

import (
	"context"

	"task-management/backend/errs"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CommentRepository struct {
	liveCollection[models.Comment]
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{liveCollection[models.Comment]{
		coll:     db.Collection(commentsCollection),
		notFound: errs.ErrCommentNotFound,
	}}
}

func (r *CommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	return r.insert(ctx, comment)
}

func (r *CommentRepository) FindLive(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return r.findLive(ctx, id)
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Comment, error) {
	return r.findAllLive(ctx, bson.M{"taskId": taskID}, byCreation())
}

func (r *CommentRepository) Replace(ctx context.Context, comment *models.Comment) error {
	return r.replace(ctx, comment.ID, comment)
}

func (r *CommentRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.softDelete(ctx, id)
}
