package model

import "time"

// PermissionGroup is a named bundle of grants assignable directly to a person,
// independent of team structure. It is the lowest-precedence grant mechanism.
type PermissionGroup struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	OrgID       string `bson:"org_id" json:"org_id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool   `bson:"is_active" json:"is_active"`
}

type PermissionGroupAction struct {
	ID           string `bson:"_id,omitempty" json:"id"`
	GroupID      string `bson:"group_id" json:"group_id"`
	ActionTypeID string `bson:"action_type_id" json:"action_type_id"`
	Scope        Scope  `bson:"scope" json:"scope"`
}

// UserGroupAssignment places a person in a group. A past expires_at makes the
// assignment inert.
type UserGroupAssignment struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	OrgID     string     `bson:"org_id" json:"org_id"`
	PersonID  string     `bson:"person_id" json:"person_id"`
	GroupID   string     `bson:"group_id" json:"group_id"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	CreatedBy string     `bson:"created_by,omitempty" json:"created_by,omitempty"`
}
