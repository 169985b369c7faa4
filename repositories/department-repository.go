package repositories

import (
	"context"

	"task-management/backend/errs"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DepartmentRepository struct {
	liveCollection[models.Department]
}

func NewDepartmentRepository(db *mongo.Database) *DepartmentRepository {
	return &DepartmentRepository{liveCollection[models.Department]{
		coll:     db.Collection(departmentsCollection),
		notFound: errs.ErrDepartmentNotFound,
	}}
}

func (r *DepartmentRepository) Insert(ctx context.Context, department *models.Department) error {
	return r.insert(ctx, department)
}

func (r *DepartmentRepository) FindLive(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	return r.findLive(ctx, id)
}

func (r *DepartmentRepository) Replace(ctx context.Context, department *models.Department) error {
	return r.replace(ctx, department.ID, department)
}

func (r *DepartmentRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.softDelete(ctx, id)
}
