package model

// Source identifies which resolver produced the final decision.
type Source string

const (
	SourceOverride Source = "override"
	SourcePosition Source = "position"
	SourceGroup    Source = "group"
	SourceNone     Source = "none"
)

// CheckContext carries the caller identity and optional resource coordinates
// for a single permission check.
type CheckContext struct {
	PersonID        string
	OrgID           string
	ResourceOwnerID string
	ResourceTeamID  string
}

// Decision is the outcome of a permission check. Scope is empty when no scope
// applies (explicit override deny, unknown action, final deny).
type Decision struct {
	Allowed     bool   `json:"allowed"`
	Scope       Scope  `json:"scope,omitempty"`
	Source      Source `json:"source"`
	PositionID  string `json:"position_id,omitempty"`
	TeamID      string `json:"team_id,omitempty"`
	TeamName    string `json:"team_name,omitempty"`
	CanDelegate bool   `json:"can_delegate,omitempty"`
}

// Deny is the terminal "no grant found" decision.
func Deny() *Decision {
	return &Decision{Allowed: false, Source: SourceNone}
}

// PermissionEntry is one row of an enumeration report.
type PermissionEntry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Allowed  bool   `json:"allowed"`
	Scope    Scope  `json:"scope,omitempty"`
	Source   Source `json:"source"`
}

type PermissionSummary struct {
	Total   int `json:"total"`
	Allowed int `json:"allowed"`
	Denied  int `json:"denied"`
}

// PermissionReport is the full allow/deny table for a person, for display and
// reporting only, never for enforcement.
type PermissionReport struct {
	Entries []PermissionEntry `json:"entries"`
	Summary PermissionSummary `json:"summary"`
}
