package engine

import (
	"context"
	"errors"

	"permd/internal/perm/model"
	"permd/internal/perm/repository"
)

// maxHierarchyDepth bounds the ancestor walk. Bad data can wire a parent
// cycle; the visited set breaks loops and the depth cap bounds legitimate but
// absurdly deep chains.
const maxHierarchyDepth = 10

// teamHierarchy returns the team's ancestor chain, starting team first.
// Callers that cascade from ancestors must skip the first element.
func (e *Engine) teamHierarchy(ctx context.Context, st *checkState, startTeamID string) ([]string, error) {
	chain := []string{startTeamID}
	visited := map[string]bool{startTeamID: true}

	current := startTeamID
	for len(chain) < maxHierarchyDepth {
		team, err := e.getTeam(ctx, st, current)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Dangling reference; the chain simply ends here.
				break
			}
			return nil, err
		}

		parent := team.ParentTeamID
		if parent == "" || visited[parent] {
			break
		}
		chain = append(chain, parent)
		visited[parent] = true
		current = parent
	}

	return chain, nil
}

func (e *Engine) getTeam(ctx context.Context, st *checkState, teamID string) (*model.Team, error) {
	if team, ok := st.teams[teamID]; ok {
		return team, nil
	}
	team, err := e.store.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	st.teams[teamID] = team
	return team, nil
}
