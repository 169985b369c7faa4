package errs

import (
	"errors"
	"fmt"
	"testing"
)

type uncomparable struct {
	details []string
}

func (u uncomparable) Error() string { return fmt.Sprint(u.details) }

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"sentinel", ErrTaskNotFound, KindNotFound},
		{"wrapped twice", fmt.Errorf("update: %w", fmt.Errorf("lookup: %w", ErrProjectNotFound)), KindNotFound},
		{"conflict", fmt.Errorf("BACKLOG -> BLOCKED: %w", ErrTaskStateCannotBeChanged), KindStateConflict},
		{"validation", ErrReasonRequired, KindValidation},
		{"io", fmt.Errorf("upload a.txt: %w", ErrAttachmentIO), KindIOFailure},
		{"credentials", ErrInvalidCredentials, KindUnauthorized},
		{"unrelated", errors.New("boom"), KindUnknown},
		{"uncomparable", uncomparable{details: []string{"x"}}, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("x: %w", ErrCommentNotFound)) {
		t.Error("expected wrapped ErrCommentNotFound to be NotFound")
	}
	if IsNotFound(ErrDuplicate) {
		t.Error("ErrDuplicate is not a NotFound error")
	}
}
