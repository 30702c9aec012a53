package model

import "time"

// Member roles
const (
	MemberRoleOwner    = "owner"
	MemberRoleLead     = "lead"
	MemberRoleMember   = "member"
	MemberRoleGuest    = "guest"
	MemberRoleObserver = "observer"
)

// Team is a node in the team forest. ParentTeamID may point at an ancestor;
// bad data can form cycles, so traversals must carry a visited set.
type Team struct {
	ID           string `bson:"_id,omitempty" json:"id"`
	OrgID        string `bson:"org_id" json:"org_id"`
	Name         string `bson:"name" json:"name"`
	Type         string `bson:"type" json:"type"`
	ParentTeamID string `bson:"parent_team_id,omitempty" json:"parent_team_id,omitempty"`
}

// Position is a role template; its static grants live in PositionPermission rows.
type Position struct {
	ID    string `bson:"_id,omitempty" json:"id"`
	Name  string `bson:"name" json:"name"`
	Level int    `bson:"level" json:"level"`
	Type  string `bson:"type" json:"type"`
}

// PositionPermission maps (position, action) to a scope. Historical rows may
// coexist for the same pair; only active ones count and the broadest scope wins.
type PositionPermission struct {
	ID           string `bson:"_id,omitempty" json:"id"`
	PositionID   string `bson:"position_id" json:"position_id"`
	ActionTypeID string `bson:"action_type_id" json:"action_type_id"`
	Scope        Scope  `bson:"scope" json:"scope"`
	CanDelegate  bool   `bson:"can_delegate" json:"can_delegate"`
	IsActive     bool   `bson:"is_active" json:"is_active"`
}

// Membership links a person to a team and position. Departures soft-deactivate
// the row (is_active=false); rows are never physically removed.
type Membership struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	OrgID      string     `bson:"org_id" json:"org_id"`
	PersonID   string     `bson:"person_id" json:"person_id"`
	TeamID     string     `bson:"team_id" json:"team_id"`
	PositionID string     `bson:"position_id" json:"position_id"`
	MemberRole string     `bson:"member_role" json:"member_role"`
	IsActive   bool       `bson:"is_active" json:"is_active"`
	StartDate  time.Time  `bson:"start_date" json:"start_date"`
	EndDate    *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`

	// Team metadata stitched in by the repository, not stored on the document.
	TeamName     string `bson:"-" json:"team_name,omitempty"`
	TeamType     string `bson:"-" json:"team_type,omitempty"`
	ParentTeamID string `bson:"-" json:"-"`
}

// IsLeadership reports whether the membership role carries implicit
// team-level authority.
func (m *Membership) IsLeadership() bool {
	return m.MemberRole == MemberRoleOwner || m.MemberRole == MemberRoleLead
}
