package engine

import (
	"context"
	"sort"

	"permd/internal/perm/model"
)

// resolvePositionPermission maps the person's positions to granted actions and
// picks the broadest applicable grant. A scope mismatch against the resource
// is a pass-through, not a deny: a narrower grant here must not block a
// broader one found by a later resolver.
func (e *Engine) resolvePositionPermission(ctx context.Context, st *checkState) (*model.Decision, error) {
	positionIDs := distinctPositionIDs(st.memberships)
	rows, err := e.store.ListPositionPermissions(ctx, positionIDs, st.action.ID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	best := bestPositionRow(rows)

	membership := membershipForPosition(st.memberships, best.PositionID)
	var teamID, teamName string
	if membership != nil {
		teamID = membership.TeamID
		teamName = membership.TeamName
	}

	if !ScopeAllows(best.Scope, st.cctx.PersonID, teamID, st.cctx.ResourceOwnerID, st.cctx.ResourceTeamID) {
		return nil, nil
	}

	return &model.Decision{
		Allowed:     true,
		Scope:       best.Scope,
		Source:      model.SourcePosition,
		PositionID:  best.PositionID,
		TeamID:      teamID,
		TeamName:    teamName,
		CanDelegate: best.CanDelegate,
	}, nil
}

// bestPositionRow sorts descending by scope rank with the lowest position id
// breaking ties, so the result is reproducible across runs.
func bestPositionRow(rows []*model.PositionPermission) *model.PositionPermission {
	sorted := make([]*model.PositionPermission, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Scope.Rank() != sorted[j].Scope.Rank() {
			return sorted[i].Scope.Rank() > sorted[j].Scope.Rank()
		}
		return sorted[i].PositionID < sorted[j].PositionID
	})
	return sorted[0]
}

func distinctPositionIDs(memberships []*model.Membership) []string {
	seen := make(map[string]bool, len(memberships))
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		if m.PositionID != "" && !seen[m.PositionID] {
			seen[m.PositionID] = true
			ids = append(ids, m.PositionID)
		}
	}
	return ids
}

// membershipForPosition returns the first membership holding the position, in
// the repository's stable order.
func membershipForPosition(memberships []*model.Membership, positionID string) *model.Membership {
	for _, m := range memberships {
		if m.PositionID == positionID {
			return m
		}
	}
	return nil
}
