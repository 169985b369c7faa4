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

type DepartmentService struct {
	tx          Transactor
	departments DepartmentStore
	projects    ProjectStore
	users       UserStore
}

func NewDepartmentService(tx Transactor, departments DepartmentStore, projects ProjectStore, users UserStore) *DepartmentService {
	return &DepartmentService{tx: tx, departments: departments, projects: projects, users: users}
}

func departmentName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("department name is required: %w", errs.ErrInvalidInput)
	}
	return name, nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, name string) (*models.Department, error) {
	name, err := departmentName(name)
	if err != nil {
		return nil, err
	}
	department := &models.Department{ID: primitive.NewObjectID(), DepartmentName: name}
	if err := s.departments.Insert(ctx, department); err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: DEPARTMENT_CREATED, Description: Department %s created with id %s", name, department.ID.Hex())
	return department, nil
}

func (s *DepartmentService) GetDepartment(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	return s.departments.FindLive(ctx, id)
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id primitive.ObjectID, name string) (*models.Department, error) {
	name, err := departmentName(name)
	if err != nil {
		return nil, err
	}

	var department *models.Department
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if department, err = s.departments.FindLive(ctx, id); err != nil {
			return err
		}
		department.DepartmentName = name
		return s.departments.Replace(ctx, department)
	})
	if err != nil {
		return nil, err
	}
	return department, nil
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id primitive.ObjectID) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.departments.FindLive(ctx, id); err != nil {
			return err
		}
		return s.departments.SoftDelete(ctx, id)
	})
	if err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: DEPARTMENT_DELETED, Description: Department %s soft deleted", id.Hex())
	return nil
}

func (s *DepartmentService) Projects(ctx context.Context, id primitive.ObjectID) ([]models.Project, error) {
	if _, err := s.departments.FindLive(ctx, id); err != nil {
		return nil, err
	}
	return s.projects.ListByDepartment(ctx, id)
}

func (s *DepartmentService) Users(ctx context.Context, id primitive.ObjectID) ([]models.User, error) {
	if _, err := s.departments.FindLive(ctx, id); err != nil {
		return nil, err
	}
	return s.users.ListByDepartment(ctx, id)
}
