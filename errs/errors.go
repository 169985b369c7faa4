// Package errs holds the error taxonomy shared by repositories, services and handlers.
package errs

import "errors"

// Kind groups errors by how the caller should react to them.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindStateConflict
	KindValidation
	KindIOFailure
	KindUnauthorized
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAttachmentNotFound = errors.New("attachment file not found")
	ErrAuthorityNotFound  = errors.New("authority not found")

	ErrTaskStateCannotBeChanged = errors.New("task state can not be changed")
	ErrDuplicate                = errors.New("record with the same unique key already exists")

	ErrReasonRequired       = errors.New("reason of state change must be entered")
	ErrInvalidTaskState     = errors.New("invalid task state")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidID            = errors.New("invalid id format")
	ErrInvalidInput         = errors.New("invalid input")

	ErrAttachmentIO = errors.New("attachment file transfer failed")

	ErrInvalidCredentials = errors.New("invalid username or password")
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrTaskNotFound, KindNotFound},
	{ErrUserNotFound, KindNotFound},
	{ErrProjectNotFound, KindNotFound},
	{ErrDepartmentNotFound, KindNotFound},
	{ErrCommentNotFound, KindNotFound},
	{ErrAttachmentNotFound, KindNotFound},
	{ErrAuthorityNotFound, KindNotFound},

	{ErrTaskStateCannotBeChanged, KindStateConflict},
	{ErrDuplicate, KindStateConflict},

	{ErrReasonRequired, KindValidation},
	{ErrInvalidTaskState, KindValidation},
	{ErrInvalidTaskPriority, KindValidation},
	{ErrInvalidProjectStatus, KindValidation},
	{ErrInvalidID, KindValidation},
	{ErrInvalidInput, KindValidation},

	{ErrAttachmentIO, KindIOFailure},

	{ErrInvalidCredentials, KindUnauthorized},
}

// KindOf returns the kind of the first sentinel found in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
