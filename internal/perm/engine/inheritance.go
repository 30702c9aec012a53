package engine

import (
	"context"
	"sort"

	"permd/internal/perm/model"
)

// resolveInheritance walks each membership team's ancestry looking for the
// person's own higher-level membership granting this action with a cascading
// scope. Own and team grants at an ancestor do not leak to descendants; only
// department, organization, and global scopes cascade downward. The first
// eligible match wins, iterating teams outer and ancestors inner.
func (e *Engine) resolveInheritance(ctx context.Context, st *checkState) (*model.Decision, error) {
	byTeam := membershipsByTeam(st.memberships)

	for _, m := range st.memberships {
		chain, err := e.teamHierarchy(ctx, st, m.TeamID)
		if err != nil {
			return nil, err
		}

		// chain[0] is the team itself; only true ancestors cascade
		for _, ancestorID := range chain[1:] {
			ancestorMemberships := byTeam[ancestorID]
			if len(ancestorMemberships) == 0 {
				continue
			}

			rows, err := e.store.ListPositionPermissions(ctx, distinctPositionIDs(ancestorMemberships), st.action.ID)
			if err != nil {
				return nil, err
			}
			row := bestCascadingRow(rows)
			if row == nil {
				continue
			}

			decision := &model.Decision{
				Allowed:     true,
				Scope:       row.Scope,
				Source:      model.SourcePosition,
				PositionID:  row.PositionID,
				TeamID:      ancestorID,
				CanDelegate: row.CanDelegate,
			}
			if am := membershipForPosition(ancestorMemberships, row.PositionID); am != nil {
				decision.TeamName = am.TeamName
			}
			return decision, nil
		}
	}
	return nil, nil
}

// bestCascadingRow picks the broadest row whose scope is eligible to cascade,
// with the usual position-id tie-break. Nil when nothing cascades.
func bestCascadingRow(rows []*model.PositionPermission) *model.PositionPermission {
	eligible := make([]*model.PositionPermission, 0, len(rows))
	for _, row := range rows {
		if row.Scope.CascadesToDescendants() {
			eligible = append(eligible, row)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Scope.Rank() != eligible[j].Scope.Rank() {
			return eligible[i].Scope.Rank() > eligible[j].Scope.Rank()
		}
		return eligible[i].PositionID < eligible[j].PositionID
	})
	return eligible[0]
}

func membershipsByTeam(memberships []*model.Membership) map[string][]*model.Membership {
	byTeam := make(map[string][]*model.Membership, len(memberships))
	for _, m := range memberships {
		byTeam[m.TeamID] = append(byTeam[m.TeamID], m)
	}
	return byTeam
}
