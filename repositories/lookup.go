package repositories

import (
	"context"
	"errors"
	"fmt"

	"task-management/backend/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// liveCollection implements the soft-delete aware lookups every store shares.
// notFound is returned whenever no live document matches.
type liveCollection[T any] struct {
	coll     *mongo.Collection
	notFound error
}

func live(filter bson.M) bson.M {
	filter["deleted"] = false
	return filter
}

// findLive loads the document with the given id unless it is soft-deleted.
func (c liveCollection[T]) findLive(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.findOne(ctx, live(bson.M{"_id": id}))
}

func (c liveCollection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, c.notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

// findAllLive never returns a nil slice so empty collections encode as [].
func (c liveCollection[T]) findAllLive(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.coll.Find(ctx, live(filter), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", c.coll.Name(), err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error on %s: %w", c.coll.Name(), err)
	}
	return docs, nil
}

func (c liveCollection[T]) insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return writeError(c.coll.Name(), err)
	}
	return nil
}

// replace swaps the live document with the given id for doc.
func (c liveCollection[T]) replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	result, err := c.coll.ReplaceOne(ctx, live(bson.M{"_id": id}), doc)
	if err != nil {
		return writeError(c.coll.Name(), err)
	}
	if result.MatchedCount == 0 {
		return c.notFound
	}
	return nil
}

// softDelete flags the document as deleted. Flagging an already deleted
// document succeeds.
func (c liveCollection[T]) softDelete(ctx context.Context, id primitive.ObjectID) error {
	result, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", c.coll.Name(), err)
	}
	if result.MatchedCount == 0 {
		return c.notFound
	}
	return nil
}

func writeError(collection string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", collection, errs.ErrDuplicate)
	}
	return fmt.Errorf("failed to write to %s: %w", collection, err)
}
