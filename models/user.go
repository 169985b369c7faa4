package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	Password     string             `json:"-" bson:"password"`
	Enabled      bool               `json:"enabled" bson:"enabled"`
	Authorities  []string           `json:"authorities" bson:"authorities"`
	DepartmentID primitive.ObjectID `json:"departmentId" bson:"departmentId"`
	Deleted      bool               `json:"-" bson:"deleted"`
}

func (u *User) HasAuthority(name string) bool {
	for _, a := range u.Authorities {
		if a == name {
			return true
		}
	}
	return false
}
