package services

import (
	"context"
	"fmt"
	"strings"

	"task-management/backend/errs"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthorityService struct {
	tx          Transactor
	authorities AuthorityStore
}

func NewAuthorityService(tx Transactor, authorities AuthorityStore) *AuthorityService {
	return &AuthorityService{tx: tx, authorities: authorities}
}

func authorityName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("authority name is required: %w", errs.ErrInvalidInput)
	}
	return name, nil
}

func (s *AuthorityService) CreateAuthority(ctx context.Context, name string) (*models.Authority, error) {
	name, err := authorityName(name)
	if err != nil {
		return nil, err
	}
	authority := &models.Authority{ID: primitive.NewObjectID(), Authority: name}
	if err := s.authorities.Insert(ctx, authority); err != nil {
		return nil, err
	}
	return authority, nil
}

func (s *AuthorityService) GetAuthority(ctx context.Context, id primitive.ObjectID) (*models.Authority, error) {
	return s.authorities.FindLive(ctx, id)
}

func (s *AuthorityService) UpdateAuthority(ctx context.Context, id primitive.ObjectID, name string) (*models.Authority, error) {
	name, err := authorityName(name)
	if err != nil {
		return nil, err
	}

	var authority *models.Authority
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if authority, err = s.authorities.FindLive(ctx, id); err != nil {
			return err
		}
		authority.Authority = name
		return s.authorities.Replace(ctx, authority)
	})
	if err != nil {
		return nil, err
	}
	return authority, nil
}

func (s *AuthorityService) DeleteAuthority(ctx context.Context, id primitive.ObjectID) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.authorities.FindLive(ctx, id); err != nil {
			return err
		}
		return s.authorities.SoftDelete(ctx, id)
	})
}
