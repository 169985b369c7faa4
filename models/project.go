package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	DepartmentID primitive.ObjectID `json:"departmentId" bson:"departmentId"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	Status       ProjectStatus      `json:"status" bson:"status"`
	Deleted      bool               `json:"-" bson:"deleted"`
}
