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

type UserRepository struct {
	liveCollection[models.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{liveCollection[models.User]{
		coll:     db.Collection(usersCollection),
		notFound: errs.ErrUserNotFound,
	}}
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	return r.insert(ctx, user)
}

func (r *UserRepository) FindLive(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findLive(ctx, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, live(bson.M{"username": username}))
}

func (r *UserRepository) ListLive(ctx context.Context) ([]models.User, error) {
	return r.findAllLive(ctx, bson.M{}, byUsername())
}

func (r *UserRepository) ListByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]models.User, error) {
	return r.findAllLive(ctx, bson.M{"departmentId": departmentID}, byUsername())
}

func (r *UserRepository) Replace(ctx context.Context, user *models.User) error {
	return r.replace(ctx, user.ID, user)
}

func (r *UserRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.softDelete(ctx, id)
}

func byUsername() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
}
