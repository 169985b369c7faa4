package services

import (
	"context"
	"fmt"
	"strings"

	"task-management/backend/errs"
	"task-management/backend/logging"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectInput struct {
	DepartmentID primitive.ObjectID   `json:"departmentId"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Status       models.ProjectStatus `json:"status"`
}

func (in *ProjectInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("project title is required: %w", errs.ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = models.ProjectInProgress
	}
	if !in.Status.IsValid() {
		return fmt.Errorf("%q: %w", in.Status, errs.ErrInvalidProjectStatus)
	}
	return nil
}

type ProjectService struct {
	tx          Transactor
	projects    ProjectStore
	departments DepartmentStore
}

func NewProjectService(tx Transactor, projects ProjectStore, departments DepartmentStore) *ProjectService {
	return &ProjectService{tx: tx, projects: projects, departments: departments}
}

func (s *ProjectService) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.DepartmentID.IsZero() {
		return nil, fmt.Errorf("department is required: %w", errs.ErrInvalidInput)
	}

	project := &models.Project{
		ID:           primitive.NewObjectID(),
		DepartmentID: in.DepartmentID,
		Title:        in.Title,
		Description:  in.Description,
		Status:       in.Status,
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.departments.FindLive(ctx, in.DepartmentID); err != nil {
			return err
		}
		return s.projects.Insert(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created in department %s", project.ID.Hex(), project.DepartmentID.Hex())
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return s.projects.FindLive(ctx, id)
}

// UpdateProject changes title, description and status. The department stays.
func (s *ProjectService) UpdateProject(ctx context.Context, id primitive.ObjectID, in ProjectInput) (*models.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var project *models.Project
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if project, err = s.projects.FindLive(ctx, id); err != nil {
			return err
		}
		project.Title = in.Title
		project.Description = in.Description
		project.Status = in.Status
		return s.projects.Replace(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.projects.FindLive(ctx, id); err != nil {
			return err
		}
		return s.projects.SoftDelete(ctx, id)
	})
	if err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s soft deleted", id.Hex())
	return nil
}
