package repositories

import (
	"context"
	"fmt"

	"task-management/backend/errs"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuthorityRepository struct {
	liveCollection[models.Authority]
}

func NewAuthorityRepository(db *mongo.Database) *AuthorityRepository {
	return &AuthorityRepository{liveCollection[models.Authority]{
		coll:     db.Collection(authoritiesCollection),
		notFound: errs.ErrAuthorityNotFound,
	}}
}

func (r *AuthorityRepository) Insert(ctx context.Context, authority *models.Authority) error {
	return r.insert(ctx, authority)
}

func (r *AuthorityRepository) FindLive(ctx context.Context, id primitive.ObjectID) (*models.Authority, error) {
	return r.findLive(ctx, id)
}

func (r *AuthorityRepository) FindByName(ctx context.Context, name string) (*models.Authority, error) {
	return r.findOne(ctx, live(bson.M{"authority": name}))
}

func (r *AuthorityRepository) Replace(ctx context.Context, authority *models.Authority) error {
	return r.replace(ctx, authority.ID, authority)
}

func (r *AuthorityRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.softDelete(ctx, id)
}

// Seed inserts every missing authority name. Existing ones, deleted or not,
// are left alone.
func (r *AuthorityRepository) Seed(ctx context.Context, names []string) error {
	for _, name := range names {
		_, err := r.coll.UpdateOne(ctx,
			bson.M{"authority": name},
			bson.M{"$setOnInsert": bson.M{"_id": primitive.NewObjectID(), "deleted": false}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("failed to seed authority %s: %w", name, err)
		}
	}
	return nil
}
