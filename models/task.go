package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskState string

const (
	StateBacklog       TaskState = "BACKLOG"
	StateInAnalysis    TaskState = "IN_ANALYSIS"
	StateInDevelopment TaskState = "IN_DEVELOPMENT"
	StateCompleted     TaskState = "COMPLETED"
	StateCancelled     TaskState = "CANCELLED"
	StateBlocked       TaskState = "BLOCKED"
)

// TaskStates lists every state in declaration order.
func TaskStates() []TaskState {
	return []TaskState{StateBacklog, StateInAnalysis, StateInDevelopment, StateCompleted, StateCancelled, StateBlocked}
}

func (s TaskState) IsValid() bool {
	switch s {
	case StateBacklog, StateInAnalysis, StateInDevelopment, StateCompleted, StateCancelled, StateBlocked:
		return true
	}
	return false
}

// IsTerminal reports whether no transition may leave s.
func (s TaskState) IsTerminal() bool {
	return s == StateCompleted
}

type TaskPriority string

const (
	PriorityHighest TaskPriority = "HIGHEST"
	PriorityHigh    TaskPriority = "HIGH"
	PriorityMedium  TaskPriority = "MEDIUM"
	PriorityLow     TaskPriority = "LOW"
	PriorityLowest  TaskPriority = "LOWEST"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow, PriorityLowest:
		return true
	}
	return false
}

type Task struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserStory            string             `json:"userStory" bson:"userStory"`
	AcceptanceCriteria   string             `json:"acceptanceCriteria" bson:"acceptanceCriteria"`
	State                TaskState          `json:"state" bson:"state"`
	Priority             TaskPriority       `json:"priority" bson:"priority"`
	ReasonForStateChange *string            `json:"reasonForStateChange,omitempty" bson:"reasonForStateChange,omitempty"`
	ProjectID            primitive.ObjectID `json:"projectId" bson:"projectId"`
	AssigneeID           primitive.ObjectID `json:"assigneeId" bson:"assigneeId"`
	Deleted              bool               `json:"-" bson:"deleted"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updatedAt"`

	// Populated on read from the comments and attachments collections.
	Comments    []Comment        `json:"comments,omitempty" bson:"-"`
	Attachments []AttachmentFile `json:"attachments,omitempty" bson:"-"`
}

// HasAssignee reports whether the task currently points at a user.
func (t *Task) HasAssignee() bool {
	return !t.AssigneeID.IsZero()
}
