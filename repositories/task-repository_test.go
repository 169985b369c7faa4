package repositories

import (
	"context"
	"errors"
	"testing"

	"task-management/backend/errs"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func taskDoc(id primitive.ObjectID, state models.TaskState, deleted bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "userStory", Value: "story"},
		{Key: "acceptanceCriteria", Value: "criteria"},
		{Key: "state", Value: string(state)},
		{Key: "priority", Value: string(models.PriorityMedium)},
		{Key: "deleted", Value: deleted},
	}
}

func updateResult(matched int) bson.D {
	return bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: matched}, {Key: "nModified", Value: matched}}
}

func TestTaskRepositoryFindLive(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test.tasks"

	mt.Run("found", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, taskDoc(id, models.StateBacklog, false)))

		task, err := repo.FindLive(context.Background(), id)
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if task.ID != id || task.State != models.StateBacklog {
			mt.Errorf("got %+v", task)
		}
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindLive(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, errs.ErrTaskNotFound) {
			mt.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestTaskRepositoryReplaceGuard(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test.tasks"

	mt.Run("live task is replaced", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		mt.AddMockResponses(updateResult(1))

		err := repo.Replace(context.Background(), &models.Task{ID: primitive.NewObjectID(), State: models.StateInAnalysis})
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
	})

	mt.Run("completed task is refused", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			updateResult(0),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, taskDoc(id, models.StateCompleted, false)),
		)

		err := repo.Replace(context.Background(), &models.Task{ID: id, State: models.StateBacklog})
		if !errors.Is(err, errs.ErrTaskStateCannotBeChanged) {
			mt.Errorf("expected ErrTaskStateCannotBeChanged, got %v", err)
		}
	})

	mt.Run("deleted task is not found", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			updateResult(0),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, taskDoc(id, models.StateBacklog, true)),
		)

		err := repo.Replace(context.Background(), &models.Task{ID: id, State: models.StateInAnalysis})
		if !errors.Is(err, errs.ErrTaskNotFound) {
			mt.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestTaskRepositorySoftDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test.tasks"

	mt.Run("already deleted task stays deleted", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		mt.AddMockResponses(updateResult(1))

		if err := repo.SoftDelete(context.Background(), primitive.NewObjectID()); err != nil {
			mt.Errorf("unexpected error: %v", err)
		}
	})

	mt.Run("completed task is refused", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			updateResult(0),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, taskDoc(id, models.StateCompleted, false)),
		)

		err := repo.SoftDelete(context.Background(), id)
		if !errors.Is(err, errs.ErrTaskStateCannotBeChanged) {
			mt.Errorf("expected ErrTaskStateCannotBeChanged, got %v", err)
		}
	})

	mt.Run("unknown task", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		mt.AddMockResponses(updateResult(0), mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		err := repo.SoftDelete(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, errs.ErrTaskNotFound) {
			mt.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestTaskRepositoryListByAssignee(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test.tasks"

	mt.Run("decodes every live task", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			taskDoc(primitive.NewObjectID(), models.StateBacklog, false),
			taskDoc(primitive.NewObjectID(), models.StateBlocked, false),
		))

		tasks, err := repo.ListByAssignee(context.Background(), primitive.NewObjectID())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 2 {
			mt.Errorf("expected 2 tasks, got %d", len(tasks))
		}
	})

	mt.Run("empty list is not nil", func(mt *mtest.T) {
		repo := NewTaskRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		tasks, err := repo.ListByProject(context.Background(), primitive.NewObjectID())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			mt.Errorf("expected empty slice, got %#v", tasks)
		}
	})
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Insert(context.Background(), &models.User{ID: primitive.NewObjectID(), Username: "ana"})
		if !errors.Is(err, errs.ErrDuplicate) {
			mt.Errorf("expected ErrDuplicate, got %v", err)
		}
	})
}

func TestDepartmentRepositoryReplaceMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no live department", func(mt *mtest.T) {
		repo := NewDepartmentRepository(mt.DB)
		mt.AddMockResponses(updateResult(0))

		err := repo.Replace(context.Background(), &models.Department{ID: primitive.NewObjectID(), DepartmentName: "R&D"})
		if !errors.Is(err, errs.ErrDepartmentNotFound) {
			mt.Errorf("expected ErrDepartmentNotFound, got %v", err)
		}
	})
}
