package models

import "time"

type ActivityType string

const (
	ActivityCreateTask        ActivityType = "CreateTask"
	ActivityUpdateTask        ActivityType = "UpdateTask"
	ActivityChangeTaskStatus  ActivityType = "ChangeTaskStatus"
	ActivityAssignTask        ActivityType = "AssignTask"
	ActivityDeleteTask        ActivityType = "DeleteTask"
	ActivityAddDocumentToTask ActivityType = "AddDocumentToTask"
)

type TaskActivity struct {
	ID           string       `json:"id"`
	TaskID       string       `json:"taskId"`
	ProjectID    string       `json:"projectId"`
	UserID       string       `json:"userId"`
	ActivityType ActivityType `json:"activityType"`
	Details      string       `json:"details"`
	CreatedAt    time.Time    `json:"createdAt"`
}
