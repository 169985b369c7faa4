package repositories

import (
	"context"
	"fmt"
	"time"

	"task-management/backend/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	departmentsCollection = "departments"
	projectsCollection    = "projects"
	usersCollection       = "users"
	authoritiesCollection = "authorities"
	tasksCollection       = "tasks"
	commentsCollection    = "comments"
	attachmentsCollection = "attachments"
)

// Store owns the Mongo client and hands out collections of one database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logging.Logger.Infof("Event ID: MONGO_CONNECTED, Description: Connected to MongoDB database %s", dbName)
	return NewStore(client, dbName), nil
}

func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// WithTransaction runs fn in a multi-document transaction. The ctx passed to
// fn is a session context; repositories must use it for their calls to join
// the transaction. Errors returned by fn abort the transaction and come back
// unchanged.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the unique keys and the lookups behind the derived
// task, comment and attachment collections.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		departmentsCollection: {uniqueIndex("departmentName")},
		projectsCollection:    {uniqueIndex("title"), {Keys: bson.D{{Key: "departmentId", Value: 1}, {Key: "deleted", Value: 1}}}},
		usersCollection:       {uniqueIndex("username"), {Keys: bson.D{{Key: "departmentId", Value: 1}, {Key: "deleted", Value: 1}}}},
		authoritiesCollection: {uniqueIndex("authority")},
		tasksCollection: {
			{Keys: bson.D{{Key: "assigneeId", Value: 1}, {Key: "deleted", Value: 1}}},
			{Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "deleted", Value: 1}}},
		},
		commentsCollection:    {{Keys: bson.D{{Key: "taskId", Value: 1}, {Key: "createdAt", Value: 1}}}},
		attachmentsCollection: {{Keys: bson.D{{Key: "taskId", Value: 1}, {Key: "createdAt", Value: 1}}}},
	}

	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func uniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}
