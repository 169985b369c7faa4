package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-management/backend/errs"
	"task-management/backend/logging"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskInput carries the client supplied fields of a task for create and update.
type TaskInput struct {
	UserStory            string              `json:"userStory"`
	AcceptanceCriteria   string              `json:"acceptanceCriteria"`
	State                models.TaskState    `json:"state"`
	Priority             models.TaskPriority `json:"priority"`
	ProjectID            primitive.ObjectID  `json:"projectId"`
	AssigneeID           primitive.ObjectID  `json:"assigneeId"`
	ReasonForStateChange *string             `json:"reasonForStateChange,omitempty"`
}

func (in TaskInput) validate() error {
	if strings.TrimSpace(in.UserStory) == "" || strings.TrimSpace(in.AcceptanceCriteria) == "" {
		return fmt.Errorf("user story and acceptance criteria are required: %w", errs.ErrInvalidInput)
	}
	if !in.State.IsValid() {
		return fmt.Errorf("%q: %w", in.State, errs.ErrInvalidTaskState)
	}
	if !in.Priority.IsValid() {
		return fmt.Errorf("%q: %w", in.Priority, errs.ErrInvalidTaskPriority)
	}
	if in.ProjectID.IsZero() || in.AssigneeID.IsZero() {
		return fmt.Errorf("project and assignee are required: %w", errs.ErrInvalidInput)
	}
	return nil
}

type TaskService struct {
	tx          Transactor
	tasks       TaskStore
	users       UserStore
	projects    ProjectStore
	comments    CommentStore
	attachments AttachmentStore
	activity    ActivityRecorder
	notifier    Notifier
	now         func() time.Time
}

// NewTaskService wires the lifecycle manager. activity and notifier may be nil,
// in which case those side effects are skipped.
func NewTaskService(tx Transactor, tasks TaskStore, users UserStore, projects ProjectStore,
	comments CommentStore, attachments AttachmentStore, activity ActivityRecorder, notifier Notifier) *TaskService {
	if activity == nil {
		activity = noopRecorder{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &TaskService{
		tx:          tx,
		tasks:       tasks,
		users:       users,
		projects:    projects,
		comments:    comments,
		attachments: attachments,
		activity:    activity,
		notifier:    notifier,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *TaskService) CreateTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		ID:                 primitive.NewObjectID(),
		UserStory:          in.UserStory,
		AcceptanceCriteria: in.AcceptanceCriteria,
		State:              in.State,
		Priority:           in.Priority,
		ProjectID:          in.ProjectID,
		AssigneeID:         in.AssigneeID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var assignee *models.User
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if assignee, err = s.users.FindLive(ctx, in.AssigneeID); err != nil {
			return err
		}
		if _, err := s.projects.FindLive(ctx, in.ProjectID); err != nil {
			return err
		}
		return s.tasks.Insert(ctx, task)
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: TASK_CREATE_FAILED, Description: Failed to create task in project %s: %v", in.ProjectID.Hex(), err)
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created in project %s", task.ID.Hex(), task.ProjectID.Hex())
	s.record(ctx, task, models.ActivityCreateTask, fmt.Sprintf("task created in state %s", task.State))
	s.notify(ctx, assignee, fmt.Sprintf("You have been assigned to task: %s", task.UserStory))
	return task, nil
}

// GetTask returns a live task with its live comments and attachments.
func (s *TaskService) GetTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	task, err := s.tasks.FindLive(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Comments, err = s.comments.ListByTask(ctx, id); err != nil {
		return nil, err
	}
	if task.Attachments, err = s.attachments.ListByTask(ctx, id); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) AssignTask(ctx context.Context, taskID, userID primitive.ObjectID) (*models.Task, error) {
	var (
		task     *models.Task
		assignee *models.User
		previous primitive.ObjectID
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if task, err = s.tasks.FindLive(ctx, taskID); err != nil {
			return err
		}
		if task.State.IsTerminal() {
			return fmt.Errorf("task %s is %s: %w", taskID.Hex(), task.State, errs.ErrTaskStateCannotBeChanged)
		}
		if assignee, err = s.users.FindLive(ctx, userID); err != nil {
			return err
		}

		previous = task.AssigneeID
		task.AssigneeID = assignee.ID
		task.UpdatedAt = s.now()
		return s.tasks.Replace(ctx, task)
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: TASK_ASSIGN_FAILED, Description: Failed to assign task %s to user %s: %v", taskID.Hex(), userID.Hex(), err)
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_ASSIGNED, Description: Task %s moved from user %s to user %s", taskID.Hex(), previous.Hex(), userID.Hex())
	s.record(ctx, task, models.ActivityAssignTask, fmt.Sprintf("assignee changed from %s to %s", previous.Hex(), userID.Hex()))
	if previous != assignee.ID {
		s.notify(ctx, assignee, fmt.Sprintf("You have been assigned to task: %s", task.UserStory))
	}
	return task, nil
}

// UpdateTask replaces the task's fields after checking the requested state
// transition. Nothing is written unless every check passes.
func (s *TaskService) UpdateTask(ctx context.Context, id primitive.ObjectID, in TaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var (
		existing *models.Task
		updated  *models.Task
		assignee *models.User
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if existing, err = s.tasks.FindLive(ctx, id); err != nil {
			return err
		}
		if err := CheckTransition(existing.State, in.State, in.ReasonForStateChange); err != nil {
			return err
		}
		if assignee, err = s.users.FindLive(ctx, in.AssigneeID); err != nil {
			return err
		}
		if _, err := s.projects.FindLive(ctx, in.ProjectID); err != nil {
			return err
		}

		updated = &models.Task{
			ID:                   existing.ID,
			UserStory:            in.UserStory,
			AcceptanceCriteria:   in.AcceptanceCriteria,
			State:                in.State,
			Priority:             in.Priority,
			ReasonForStateChange: in.ReasonForStateChange,
			ProjectID:            in.ProjectID,
			AssigneeID:           in.AssigneeID,
			CreatedAt:            existing.CreatedAt,
			UpdatedAt:            s.now(),
		}
		return s.tasks.Replace(ctx, updated)
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: TASK_UPDATE_FAILED, Description: Failed to update task %s: %v", id.Hex(), err)
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_UPDATED, Description: Task %s updated, state %s -> %s", id.Hex(), existing.State, updated.State)
	if existing.State != updated.State {
		s.record(ctx, updated, models.ActivityChangeTaskStatus, fmt.Sprintf("state changed from %s to %s", existing.State, updated.State))
	} else {
		s.record(ctx, updated, models.ActivityUpdateTask, "task details updated")
	}
	if existing.AssigneeID != updated.AssigneeID {
		s.notify(ctx, assignee, fmt.Sprintf("You have been assigned to task: %s", updated.UserStory))
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	var task *models.Task
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if task, err = s.tasks.FindLive(ctx, id); err != nil {
			return err
		}
		if task.State.IsTerminal() {
			return fmt.Errorf("task %s is %s: %w", id.Hex(), task.State, errs.ErrTaskStateCannotBeChanged)
		}
		return s.tasks.SoftDelete(ctx, id)
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: TASK_DELETE_FAILED, Description: Failed to delete task %s: %v", id.Hex(), err)
		return err
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s soft deleted", id.Hex())
	s.record(ctx, task, models.ActivityDeleteTask, "task deleted")
	return nil
}

func (s *TaskService) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	if _, err := s.projects.FindLive(ctx, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *TaskService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	if _, err := s.users.FindLive(ctx, userID); err != nil {
		return nil, err
	}
	return s.tasks.ListByAssignee(ctx, userID)
}

// Activity returns the task's activity history, newest first.
func (s *TaskService) Activity(ctx context.Context, id primitive.ObjectID) ([]models.TaskActivity, error) {
	if _, err := s.tasks.FindLive(ctx, id); err != nil {
		return nil, err
	}
	return s.activity.ListByTask(ctx, id.Hex())
}

func (s *TaskService) record(ctx context.Context, task *models.Task, kind models.ActivityType, details string) {
	activity := models.TaskActivity{
		TaskID:       task.ID.Hex(),
		ProjectID:    task.ProjectID.Hex(),
		UserID:       task.AssigneeID.Hex(),
		ActivityType: kind,
		Details:      details,
		CreatedAt:    s.now(),
	}
	if err := s.activity.Record(ctx, activity); err != nil {
		logging.Logger.Warnf("Event ID: TASK_ACTIVITY_FAILED, Description: Failed to record %s for task %s: %v", kind, activity.TaskID, err)
	}
}

func (s *TaskService) notify(ctx context.Context, user *models.User, message string) {
	if user == nil {
		return
	}
	if err := s.notifier.Notify(ctx, user.ID.Hex(), user.Username, message); err != nil {
		logging.Logger.Warnf("Event ID: NOTIFICATION_FAILED, Description: Failed to notify user %s: %v", user.Username, err)
	}
}
