package services

import (
	"context"
	"fmt"
	"strings"

	"task-management/backend/errs"
	"task-management/backend/logging"
	"task-management/backend/models"
	"task-management/backend/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserInput struct {
	Username     string             `json:"username"`
	Password     string             `json:"password"`
	Enabled      *bool              `json:"enabled,omitempty"`
	Authorities  []string           `json:"authorities"`
	DepartmentID primitive.ObjectID `json:"departmentId"`
}

type UserService struct {
	tx          Transactor
	users       UserStore
	departments DepartmentStore
	authorities AuthorityStore
}

func NewUserService(tx Transactor, users UserStore, departments DepartmentStore, authorities AuthorityStore) *UserService {
	return &UserService{tx: tx, users: users, departments: departments, authorities: authorities}
}

// resolve checks the department and every authority name inside the running transaction.
func (s *UserService) resolve(ctx context.Context, in UserInput) error {
	if _, err := s.departments.FindLive(ctx, in.DepartmentID); err != nil {
		return err
	}
	for _, name := range in.Authorities {
		if _, err := s.authorities.FindByName(ctx, name); err != nil {
			return fmt.Errorf("authority %q: %w", name, err)
		}
	}
	return nil
}

func (s *UserService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", errs.ErrInvalidInput)
	}
	if in.DepartmentID.IsZero() {
		return nil, fmt.Errorf("department is required: %w", errs.ErrInvalidInput)
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     in.Username,
		Password:     hashed,
		Enabled:      in.Enabled == nil || *in.Enabled,
		Authorities:  authoritiesOrEmpty(in.Authorities),
		DepartmentID: in.DepartmentID,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolve(ctx, in); err != nil {
			return err
		}
		return s.users.Insert(ctx, user)
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: USER_CREATE_FAILED, Description: Failed to create user %s: %v", in.Username, err)
		return nil, err
	}
	logging.Logger.Infof("Event ID: USER_CREATED, Description: User %s created with id %s", user.Username, user.ID.Hex())
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.FindLive(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListLive(ctx)
}

// UpdateUser may move the user to another department. An empty password keeps
// the stored hash.
func (s *UserService) UpdateUser(ctx context.Context, id primitive.ObjectID, in UserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.DepartmentID.IsZero() {
		return nil, fmt.Errorf("username and department are required: %w", errs.ErrInvalidInput)
	}

	var hashed string
	if in.Password != "" {
		var err error
		if hashed, err = utils.HashPassword(in.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	var user *models.User
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if user, err = s.users.FindLive(ctx, id); err != nil {
			return err
		}
		if err := s.resolve(ctx, in); err != nil {
			return err
		}
		user.Username = in.Username
		user.Authorities = authoritiesOrEmpty(in.Authorities)
		user.DepartmentID = in.DepartmentID
		if in.Enabled != nil {
			user.Enabled = *in.Enabled
		}
		if hashed != "" {
			user.Password = hashed
		}
		return s.users.Replace(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindLive(ctx, id); err != nil {
			return err
		}
		return s.users.SoftDelete(ctx, id)
	})
	if err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: USER_DELETED, Description: User %s soft deleted", id.Hex())
	return nil
}

func authoritiesOrEmpty(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}

// SeedAdmin creates the bootstrap administrator unless a live user with that
// name already exists. The account belongs to no department.
func SeedAdmin(ctx context.Context, users UserStore, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := users.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errs.IsNotFound(err) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &models.User{
		ID:          primitive.NewObjectID(),
		Username:    username,
		Password:    hashed,
		Enabled:     true,
		Authorities: []string{models.AuthorityAdmin},
	}
	if err := users.Insert(ctx, admin); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: ADMIN_SEEDED, Description: Bootstrap administrator %s created", username)
	return nil
}
