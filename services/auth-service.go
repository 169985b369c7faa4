package services

import (
	"context"
	"fmt"

	"task-management/backend/errs"
	"task-management/backend/logging"
	"task-management/backend/utils"
)

type TokenGenerator interface {
	GenerateToken(username, userID string, roles []string) (string, error)
}

type AuthService struct {
	users  UserStore
	tokens TokenGenerator
}

func NewAuthService(users UserStore, tokens TokenGenerator) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login returns a signed token for an enabled user with a matching password.
// Unknown users and wrong passwords yield the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errs.IsNotFound(err) {
			logging.Logger.Warnf("Event ID: LOGIN_FAILED, Description: Unknown user %s", username)
			return "", errs.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.Enabled || !utils.CheckPassword(user.Password, password) {
		logging.Logger.Warnf("Event ID: LOGIN_FAILED, Description: Rejected credentials for user %s", username)
		return "", errs.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.Username, user.ID.Hex(), user.Authorities)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	logging.Logger.Infof("Event ID: LOGIN_SUCCESS, Description: User %s logged in", username)
	return token, nil
}
