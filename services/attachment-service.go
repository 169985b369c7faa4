package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"task-management/backend/errs"
	"task-management/backend/logging"
	"task-management/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileUpload is one file received from a client.
type FileUpload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type AttachmentService struct {
	tx          Transactor
	attachments AttachmentStore
	tasks       TaskStore
	blobs       BlobStore
	activity    ActivityRecorder
}

func NewAttachmentService(tx Transactor, attachments AttachmentStore, tasks TaskStore, blobs BlobStore, activity ActivityRecorder) *AttachmentService {
	if activity == nil {
		activity = noopRecorder{}
	}
	return &AttachmentService{tx: tx, attachments: attachments, tasks: tasks, blobs: blobs, activity: activity}
}

// Upload stores every file and attaches it to the task with a shared
// description. Either all metadata records are written or none are.
func (s *AttachmentService) Upload(ctx context.Context, taskID primitive.ObjectID, description string, files []FileUpload) ([]models.AttachmentFile, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("at least one file is required: %w", errs.ErrInvalidInput)
	}
	task, err := s.tasks.FindLive(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	records := make([]models.AttachmentFile, 0, len(files))
	for _, f := range files {
		blobID, size, err := s.blobs.Upload(f.Name, f.Content)
		if err != nil {
			s.discard(records)
			return nil, err
		}
		records = append(records, models.AttachmentFile{
			ID:          primitive.NewObjectID(),
			TaskID:      taskID,
			FileName:    f.Name,
			FileType:    f.ContentType,
			Description: description,
			BlobID:      blobID,
			Size:        size,
			CreatedAt:   now,
		})
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.tasks.FindLive(ctx, taskID); err != nil {
			return err
		}
		for i := range records {
			if err := s.attachments.Insert(ctx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.discard(records)
		return nil, err
	}

	for _, r := range records {
		logging.Logger.Infof("Event ID: ATTACHMENT_UPLOADED, Description: File %s (%d bytes) attached to task %s", r.FileName, r.Size, taskID.Hex())
		s.record(ctx, task, fmt.Sprintf("file %s attached", r.FileName))
	}
	return records, nil
}

func (s *AttachmentService) GetAttachment(ctx context.Context, id primitive.ObjectID) (*models.AttachmentFile, error) {
	return s.attachments.FindLive(ctx, id)
}

// WriteContent streams the stored bytes of file to w.
func (s *AttachmentService) WriteContent(file *models.AttachmentFile, w io.Writer) error {
	_, err := s.blobs.Download(file.BlobID, w)
	return err
}

// UpdateAttachment replaces the metadata and, when file is given, the content.
// The attachment may move to another live task.
func (s *AttachmentService) UpdateAttachment(ctx context.Context, id, taskID primitive.ObjectID, description string, file *FileUpload) (*models.AttachmentFile, error) {
	if _, err := s.attachments.FindLive(ctx, id); err != nil {
		return nil, err
	}

	var replacement *models.AttachmentFile
	if file != nil {
		blobID, size, err := s.blobs.Upload(file.Name, file.Content)
		if err != nil {
			return nil, err
		}
		replacement = &models.AttachmentFile{FileName: file.Name, FileType: file.ContentType, BlobID: blobID, Size: size}
	}

	var (
		attachment *models.AttachmentFile
		oldBlob    primitive.ObjectID
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if attachment, err = s.attachments.FindLive(ctx, id); err != nil {
			return err
		}
		if _, err := s.tasks.FindLive(ctx, taskID); err != nil {
			return err
		}
		oldBlob = attachment.BlobID
		attachment.TaskID = taskID
		attachment.Description = description
		if replacement != nil {
			attachment.FileName = replacement.FileName
			attachment.FileType = replacement.FileType
			attachment.BlobID = replacement.BlobID
			attachment.Size = replacement.Size
		}
		return s.attachments.Replace(ctx, attachment)
	})
	if err != nil {
		if replacement != nil {
			s.discard([]models.AttachmentFile{*replacement})
		}
		return nil, err
	}

	if replacement != nil && oldBlob != attachment.BlobID {
		if err := s.blobs.Delete(oldBlob); err != nil {
			logging.Logger.Warnf("Event ID: ATTACHMENT_BLOB_CLEANUP_FAILED, Description: Failed to remove replaced blob %s: %v", oldBlob.Hex(), err)
		}
	}
	return attachment, nil
}

// DeleteAttachment soft deletes the metadata. The blob is kept with it.
func (s *AttachmentService) DeleteAttachment(ctx context.Context, id primitive.ObjectID) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.attachments.FindLive(ctx, id); err != nil {
			return err
		}
		return s.attachments.SoftDelete(ctx, id)
	})
}

func (s *AttachmentService) discard(records []models.AttachmentFile) {
	for _, r := range records {
		if err := s.blobs.Delete(r.BlobID); err != nil {
			logging.Logger.Warnf("Event ID: ATTACHMENT_BLOB_CLEANUP_FAILED, Description: Failed to remove orphan blob %s: %v", r.BlobID.Hex(), err)
		}
	}
}

func (s *AttachmentService) record(ctx context.Context, task *models.Task, details string) {
	activity := models.TaskActivity{
		TaskID:       task.ID.Hex(),
		ProjectID:    task.ProjectID.Hex(),
		UserID:       task.AssigneeID.Hex(),
		ActivityType: models.ActivityAddDocumentToTask,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.activity.Record(ctx, activity); err != nil {
		logging.Logger.Warnf("Event ID: TASK_ACTIVITY_FAILED, Description: Failed to record attachment for task %s: %v", activity.TaskID, err)
	}
}
