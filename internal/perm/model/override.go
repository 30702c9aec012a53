package model

import "time"

// UserPermissionOverride is a person-specific exception. An override with
// revoked_at set is soft-deleted; an override with expires_at in the past is
// treated as absent. While active it outranks every structural grant.
type UserPermissionOverride struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	PersonID     string     `bson:"person_id" json:"person_id"`
	ActionTypeID string     `bson:"action_type_id" json:"action_type_id"`
	IsGranted    bool       `bson:"is_granted" json:"is_granted"`
	Scope        Scope      `bson:"scope,omitempty" json:"scope,omitempty"`
	ExpiresAt    *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	RevokedAt    *time.Time `bson:"revoked_at,omitempty" json:"revoked_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	CreatedBy    string     `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// Expired reports whether the override's expiry has passed. An override with
// no expires_at never expires.
func (o *UserPermissionOverride) Expired(now time.Time) bool {
	return o.ExpiresAt != nil && o.ExpiresAt.Before(now)
}
