package engine

import (
	"context"
	"time"

	"permd/internal/perm/model"
)

// resolveOverride applies person-specific exceptions. An active override is
// authoritative in both directions: a revocation denies even against an
// organization-wide grant discovered later, and a grant allows immediately.
func (e *Engine) resolveOverride(ctx context.Context, personID, actionTypeID string) (*model.Decision, error) {
	override, err := e.store.GetActiveOverride(ctx, personID, actionTypeID)
	if err != nil {
		return nil, err
	}
	if override == nil || override.Expired(time.Now()) {
		return nil, nil
	}

	if !override.IsGranted {
		return &model.Decision{
			Allowed: false,
			Source:  model.SourceOverride,
		}, nil
	}

	scope := override.Scope
	if scope == "" {
		scope = model.ScopeOrganization
	}
	return &model.Decision{
		Allowed: true,
		Scope:   scope,
		Source:  model.SourceOverride,
		// Overrides never carry delegation
		CanDelegate: false,
	}, nil
}
