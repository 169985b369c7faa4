package repositories

import (
	"errors"
	"fmt"
	"io"

	"task-management/backend/errs"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const attachmentBucket = "attachment_files"

// BlobStore keeps attachment contents in a GridFS bucket.
type BlobStore struct {
	bucket *gridfs.Bucket
}

func NewBlobStore(db *mongo.Database) (*BlobStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(attachmentBucket))
	if err != nil {
		return nil, fmt.Errorf("failed to open GridFS bucket: %w", err)
	}
	return &BlobStore{bucket: bucket}, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Upload streams source into a new blob and returns its id and size.
func (b *BlobStore) Upload(filename string, source io.Reader) (primitive.ObjectID, int64, error) {
	counter := &countingReader{r: source}
	id, err := b.bucket.UploadFromStream(filename, counter)
	if err != nil {
		return primitive.NilObjectID, 0, fmt.Errorf("upload %s: %v: %w", filename, err, errs.ErrAttachmentIO)
	}
	return id, counter.n, nil
}

func (b *BlobStore) Download(id primitive.ObjectID, w io.Writer) (int64, error) {
	n, err := b.bucket.DownloadToStream(id, w)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return 0, errs.ErrAttachmentNotFound
	}
	if err != nil {
		return n, fmt.Errorf("download %s: %v: %w", id.Hex(), err, errs.ErrAttachmentIO)
	}
	return n, nil
}

func (b *BlobStore) Delete(id primitive.ObjectID) error {
	if err := b.bucket.Delete(id); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("delete %s: %v: %w", id.Hex(), err, errs.ErrAttachmentIO)
	}
	return nil
}
