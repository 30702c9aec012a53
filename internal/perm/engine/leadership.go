package engine

import (
	"context"

	"permd/internal/perm/model"
)

// resolveLeadership grants an implicit team-scope permission to team owners
// and leads. Critical-risk actions never pass here: those always require an
// explicit position permission, override, or group grant.
func (e *Engine) resolveLeadership(ctx context.Context, st *checkState) (*model.Decision, error) {
	if st.action.RiskLevel == model.RiskCritical {
		return nil, nil
	}

	if st.cctx.ResourceTeamID != "" && !memberOfTeam(st.memberships, st.cctx.ResourceTeamID) {
		return nil, nil
	}

	for _, m := range st.memberships {
		if !m.IsLeadership() {
			continue
		}
		return &model.Decision{
			Allowed:     true,
			Scope:       model.ScopeTeam,
			Source:      model.SourcePosition,
			PositionID:  m.PositionID,
			TeamID:      m.TeamID,
			TeamName:    m.TeamName,
			CanDelegate: true,
		}, nil
	}
	return nil, nil
}

func memberOfTeam(memberships []*model.Membership, teamID string) bool {
	for _, m := range memberships {
		if m.TeamID == teamID {
			return true
		}
	}
	return false
}
