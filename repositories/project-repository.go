package repositories

import (
	"context"

	"task-management/backend/errs"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectRepository struct {
	liveCollection[models.Project]
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{liveCollection[models.Project]{
		coll:     db.Collection(projectsCollection),
		notFound: errs.ErrProjectNotFound,
	}}
}

func (r *ProjectRepository) Insert(ctx context.Context, project *models.Project) error {
	return r.insert(ctx, project)
}

func (r *ProjectRepository) FindLive(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return r.findLive(ctx, id)
}

func (r *ProjectRepository) ListByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]models.Project, error) {
	return r.findAllLive(ctx, bson.M{"departmentId": departmentID}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
}

func (r *ProjectRepository) Replace(ctx context.Context, project *models.Project) error {
	return r.replace(ctx, project.ID, project)
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.softDelete(ctx, id)
}
