package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-management/backend/logging"
	"task-management/backend/models"

	"github.com/gocql/gocql"
)

const activityKeyspace = "task_activity"

// ActivityRepository stores the task activity log in Cassandra, newest first
// per task.
type ActivityRepository struct {
	session *gocql.Session
}

// NewActivityRepository connects to hosts (comma separated), creating the
// keyspace and table when missing.
func NewActivityRepository(hosts string) (*ActivityRepository, error) {
	cluster := gocql.NewCluster(strings.Split(hosts, ",")...)
	cluster.Keyspace = "system"
	cluster.Timeout = 5 * time.Second
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Cassandra: %w", err)
	}

	err = session.Query(
		`CREATE KEYSPACE IF NOT EXISTS ` + activityKeyspace + `
		 WITH replication = {
			'class': 'SimpleStrategy',
			'replication_factor': 1
		 }`).Exec()
	session.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to create keyspace: %w", err)
	}

	cluster.Keyspace = activityKeyspace
	cluster.Consistency = gocql.One
	session, err = cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s keyspace: %w", activityKeyspace, err)
	}

	repo := &ActivityRepository{session: session}
	if err := repo.createTable(); err != nil {
		session.Close()
		return nil, err
	}
	logging.Logger.Infof("Event ID: CASSANDRA_CONNECTED, Description: Connected to Cassandra keyspace %s", activityKeyspace)
	return repo, nil
}

func (r *ActivityRepository) createTable() error {
	err := r.session.Query(
		`CREATE TABLE IF NOT EXISTS task_activity (
			task_id TEXT,
			created_at TIMESTAMP,
			id TIMEUUID,
			project_id TEXT,
			user_id TEXT,
			activity_type TEXT,
			details TEXT,
			PRIMARY KEY ((task_id), created_at, id)
		) WITH CLUSTERING ORDER BY (created_at DESC, id ASC)`).Exec()
	if err != nil {
		return fmt.Errorf("failed to create task_activity table: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Close() {
	r.session.Close()
}

func (r *ActivityRepository) Record(ctx context.Context, activity models.TaskActivity) error {
	id := gocql.TimeUUID()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = id.Time()
	}

	err := r.session.Query(
		`INSERT INTO task_activity (task_id, created_at, id, project_id, user_id, activity_type, details)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		activity.TaskID, activity.CreatedAt, id, activity.ProjectID, activity.UserID, string(activity.ActivityType), activity.Details,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to record %s activity: %w", activity.ActivityType, err)
	}
	return nil
}

func (r *ActivityRepository) ListByTask(ctx context.Context, taskID string) ([]models.TaskActivity, error) {
	iter := r.session.Query(
		`SELECT id, task_id, project_id, user_id, activity_type, details, created_at
		 FROM task_activity WHERE task_id = ?`, taskID,
	).WithContext(ctx).Iter()

	activities := []models.TaskActivity{}
	var (
		id           gocql.UUID
		activity     models.TaskActivity
		activityType string
	)
	for iter.Scan(&id, &activity.TaskID, &activity.ProjectID, &activity.UserID, &activityType, &activity.Details, &activity.CreatedAt) {
		activity.ID = id.String()
		activity.ActivityType = models.ActivityType(activityType)
		activities = append(activities, activity)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to list activity of task %s: %w", taskID, err)
	}
	return activities, nil
}
