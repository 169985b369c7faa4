package services

import (
	"context"
	"io"

	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transactor runs fn inside a single storage transaction. Stores called with
// the ctx handed to fn take part in that transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Every FindLive / ListBy* method skips soft-deleted records and returns the
// entity's NotFound error from package errs when nothing live matches.

type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) error
	FindLive(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	Replace(ctx context.Context, task *models.Task) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindLive(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ListLive(ctx context.Context) ([]models.User, error)
	ListByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]models.User, error)
	Replace(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type ProjectStore interface {
	Insert(ctx context.Context, project *models.Project) error
	FindLive(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	ListByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]models.Project, error)
	Replace(ctx context.Context, project *models.Project) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type DepartmentStore interface {
	Insert(ctx context.Context, department *models.Department) error
	FindLive(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	Replace(ctx context.Context, department *models.Department) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type AuthorityStore interface {
	Insert(ctx context.Context, authority *models.Authority) error
	FindLive(ctx context.Context, id primitive.ObjectID) (*models.Authority, error)
	FindByName(ctx context.Context, name string) (*models.Authority, error)
	Replace(ctx context.Context, authority *models.Authority) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type CommentStore interface {
	Insert(ctx context.Context, comment *models.Comment) error
	FindLive(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Comment, error)
	Replace(ctx context.Context, comment *models.Comment) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type AttachmentStore interface {
	Insert(ctx context.Context, file *models.AttachmentFile) error
	FindLive(ctx context.Context, id primitive.ObjectID) (*models.AttachmentFile, error)
	ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.AttachmentFile, error)
	Replace(ctx context.Context, file *models.AttachmentFile) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

// BlobStore keeps attachment bytes outside the metadata documents.
type BlobStore interface {
	Upload(filename string, source io.Reader) (primitive.ObjectID, int64, error)
	Download(id primitive.ObjectID, w io.Writer) (int64, error)
	Delete(id primitive.ObjectID) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, activity models.TaskActivity) error
	ListByTask(ctx context.Context, taskID string) ([]models.TaskActivity, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID, username, message string) error
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, models.TaskActivity) error { return nil }

func (noopRecorder) ListByTask(context.Context, string) ([]models.TaskActivity, error) {
	return []models.TaskActivity{}, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string, string) error { return nil }
