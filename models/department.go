package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Department struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	DepartmentName string             `json:"departmentName" bson:"departmentName"`
	Deleted        bool               `json:"-" bson:"deleted"`
}
