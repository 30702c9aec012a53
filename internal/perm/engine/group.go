package engine

import (
	"context"
	"sort"

	"permd/internal/perm/model"
)

// resolveGroupFallback is the last resort: permission groups assigned directly
// to the person, independent of team structure. Unlike the other resolvers it
// always produces a decision; no grant here means the final deny.
func (e *Engine) resolveGroupFallback(ctx context.Context, st *checkState) (*model.Decision, error) {
	assignments, err := e.store.ListActiveGroupAssignments(ctx, st.cctx.OrgID, st.cctx.PersonID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return model.Deny(), nil
	}

	groupIDs := make([]string, 0, len(assignments))
	seen := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if !seen[a.GroupID] {
			seen[a.GroupID] = true
			groupIDs = append(groupIDs, a.GroupID)
		}
	}

	rows, err := e.store.ListGroupActions(ctx, groupIDs, st.action.ID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return model.Deny(), nil
	}

	sorted := make([]*model.PermissionGroupAction, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Scope.Rank() != sorted[j].Scope.Rank() {
			return sorted[i].Scope.Rank() > sorted[j].Scope.Rank()
		}
		return sorted[i].GroupID < sorted[j].GroupID
	})
	best := sorted[0]

	return &model.Decision{
		Allowed: true,
		Scope:   best.Scope,
		Source:  model.SourceGroup,
		// Group grants never carry delegation
		CanDelegate: false,
	}, nil
}
