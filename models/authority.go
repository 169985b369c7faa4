package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	AuthorityAdmin               = "Admin"
	AuthorityTeamMember          = "Team_Member"
	AuthorityProjectGroupManager = "Project_Group_Manager"
	AuthorityProjectManager      = "Project_Manager"
	AuthorityTeamLeader          = "Team_Leader"
)

// DefaultAuthorities are seeded at startup.
var DefaultAuthorities = []string{
	AuthorityAdmin,
	AuthorityTeamMember,
	AuthorityProjectGroupManager,
	AuthorityProjectManager,
	AuthorityTeamLeader,
}

type Authority struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Authority string             `json:"authority" bson:"authority"`
	Deleted   bool               `json:"-" bson:"deleted"`
}
