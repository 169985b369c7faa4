package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttachmentFile is the metadata record of a file stored in the blob bucket.
type AttachmentFile struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TaskID      primitive.ObjectID `json:"taskId" bson:"taskId"`
	FileName    string             `json:"fileName" bson:"fileName"`
	FileType    string             `json:"fileType" bson:"fileType"`
	Description string             `json:"description" bson:"description"`
	BlobID      primitive.ObjectID `json:"-" bson:"blobId"`
	Size        int64              `json:"size" bson:"size"`
	Deleted     bool               `json:"-" bson:"deleted"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
