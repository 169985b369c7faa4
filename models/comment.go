package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Text      string             `json:"text" bson:"text"`
	AuthorID  primitive.ObjectID `json:"authorId" bson:"authorId"`
	TaskID    primitive.ObjectID `json:"taskId" bson:"taskId"`
	Deleted   bool               `json:"-" bson:"deleted"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
