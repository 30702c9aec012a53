package engine

import "permd/internal/perm/model"

// ScopeAllows decides whether a grant at the given scope permits access to a
// concrete resource. Pure function, no store access.
//
// Department currently matches exactly like team: the team hierarchy is not
// consulted at match time, only for inheritance cascading. Known limitation.
func ScopeAllows(scope model.Scope, personID, userTeamID, resourceOwnerID, resourceTeamID string) bool {
	switch scope {
	case model.ScopeOwn:
		return resourceOwnerID == personID
	case model.ScopeTeam, model.ScopeDepartment:
		return resourceTeamID == "" || resourceTeamID == userTeamID
	case model.ScopeOrganization, model.ScopeGlobal:
		return true
	default:
		return false
	}
}
