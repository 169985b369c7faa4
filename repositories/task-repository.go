package repositories

import (
	"context"
	"errors"
	"fmt"

	"task-management/backend/errs"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskRepository struct {
	liveCollection[models.Task]
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{liveCollection[models.Task]{
		coll:     db.Collection(tasksCollection),
		notFound: errs.ErrTaskNotFound,
	}}
}

// mutable matches the task only while it is live and not COMPLETED.
func mutable(id primitive.ObjectID) bson.M {
	return bson.M{
		"_id":     id,
		"deleted": false,
		"state":   bson.M{"$ne": models.StateCompleted},
	}
}

func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) error {
	return r.insert(ctx, task)
}

func (r *TaskRepository) FindLive(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	return r.findLive(ctx, id)
}

// FindByID returns the task even when it is soft-deleted.
func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// Replace writes the new version of a live task. A stored COMPLETED task is
// never overwritten regardless of what the caller checked beforehand.
func (r *TaskRepository) Replace(ctx context.Context, task *models.Task) error {
	result, err := r.coll.ReplaceOne(ctx, mutable(task.ID), task)
	if err != nil {
		return writeError(tasksCollection, err)
	}
	if result.MatchedCount == 0 {
		return r.guardFailure(ctx, task.ID, false)
	}
	return nil
}

// SoftDelete flags the task as deleted. Deleting a deleted task is a no-op,
// deleting a COMPLETED one is refused.
func (r *TaskRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "state": bson.M{"$ne": models.StateCompleted}}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.MatchedCount == 0 {
		return r.guardFailure(ctx, id, true)
	}
	return nil
}

// guardFailure explains why a guarded write matched nothing.
func (r *TaskRepository) guardFailure(ctx context.Context, id primitive.ObjectID, allowDeleted bool) error {
	var task models.Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch task: %w", err)
	}
	if task.Deleted && !allowDeleted {
		return errs.ErrTaskNotFound
	}
	if task.State.IsTerminal() {
		return fmt.Errorf("task %s is %s: %w", id.Hex(), task.State, errs.ErrTaskStateCannotBeChanged)
	}
	return errs.ErrTaskNotFound
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return r.findAllLive(ctx, bson.M{"assigneeId": userID}, byCreation())
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	return r.findAllLive(ctx, bson.M{"projectId": projectID}, byCreation())
}

func byCreation() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
}
