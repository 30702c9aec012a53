package repository

import (
	"context"
	"errors"

	"permd/internal/perm/model"
)

var ErrNotFound = errors.New("not found")

// Store is the engine's read-only view of the underlying data. Every method
// returns a plain error on store failure; the engine propagates those rather
// than converting them into denies.
type Store interface {
	// Look up an active action type by its dot-namespaced code.
	// Returns ErrNotFound for unknown or retired codes.
	GetActionTypeByCode(ctx context.Context, code string) (*model.ActionType, error)
	// List all active action types, ordered by code.
	ListActiveActionTypes(ctx context.Context) ([]*model.ActionType, error)
	// Fetch the person's non-revoked override for the action, nil when none exists.
	// Expiry is evaluated by the caller, not here.
	GetActiveOverride(ctx context.Context, personID, actionTypeID string) (*model.UserPermissionOverride, error)
	// List the person's active memberships with team metadata stitched in,
	// ordered by start date then id for stable resolution.
	ListActiveMemberships(ctx context.Context, orgID, personID string) ([]*model.Membership, error)
	// Fetch a single team. Returns ErrNotFound for dangling parent references.
	GetTeam(ctx context.Context, teamID string) (*model.Team, error)
	// List active position-permission rows for the given positions and action.
	ListPositionPermissions(ctx context.Context, positionIDs []string, actionTypeID string) ([]*model.PositionPermission, error)
	// List the person's group assignments that have not expired.
	ListActiveGroupAssignments(ctx context.Context, orgID, personID string) ([]*model.UserGroupAssignment, error)
	// List group-action rows for the given groups and action.
	ListGroupActions(ctx context.Context, groupIDs []string, actionTypeID string) ([]*model.PermissionGroupAction, error)
	// Initialize Indexes
	EnsureIndexes(ctx context.Context) error
}
