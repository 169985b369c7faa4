package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-management/backend/errs"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentInput struct {
	Text     string             `json:"text"`
	AuthorID primitive.ObjectID `json:"authorId"`
	TaskID   primitive.ObjectID `json:"taskId"`
}

func (in CommentInput) validate() error {
	if strings.TrimSpace(in.Text) == "" {
		return fmt.Errorf("comment text is required: %w", errs.ErrInvalidInput)
	}
	if in.AuthorID.IsZero() || in.TaskID.IsZero() {
		return fmt.Errorf("author and task are required: %w", errs.ErrInvalidInput)
	}
	return nil
}

type CommentService struct {
	tx       Transactor
	comments CommentStore
	tasks    TaskStore
	users    UserStore
}

func NewCommentService(tx Transactor, comments CommentStore, tasks TaskStore, users UserStore) *CommentService {
	return &CommentService{tx: tx, comments: comments, tasks: tasks, users: users}
}

func (s *CommentService) resolve(ctx context.Context, in CommentInput) error {
	if _, err := s.tasks.FindLive(ctx, in.TaskID); err != nil {
		return err
	}
	_, err := s.users.FindLive(ctx, in.AuthorID)
	return err
}

func (s *CommentService) CreateComment(ctx context.Context, in CommentInput) (*models.Comment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		ID:        primitive.NewObjectID(),
		Text:      in.Text,
		AuthorID:  in.AuthorID,
		TaskID:    in.TaskID,
		CreatedAt: time.Now().UTC(),
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolve(ctx, in); err != nil {
			return err
		}
		return s.comments.Insert(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return s.comments.FindLive(ctx, id)
}

// UpdateComment may move the comment to another task or author.
func (s *CommentService) UpdateComment(ctx context.Context, id primitive.ObjectID, in CommentInput) (*models.Comment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var comment *models.Comment
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if comment, err = s.comments.FindLive(ctx, id); err != nil {
			return err
		}
		if err := s.resolve(ctx, in); err != nil {
			return err
		}
		comment.Text = in.Text
		comment.AuthorID = in.AuthorID
		comment.TaskID = in.TaskID
		return s.comments.Replace(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.comments.FindLive(ctx, id); err != nil {
			return err
		}
		return s.comments.SoftDelete(ctx, id)
	})
}
