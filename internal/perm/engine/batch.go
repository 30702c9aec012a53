package engine

import (
	"context"

	"permd/internal/perm/model"

	"golang.org/x/sync/errgroup"
)

// CheckManyAllRequired runs a check per code and denies fast on the first
// failure. When every code passes it returns the broadest-scope result among
// them as representative.
func (e *Engine) CheckManyAllRequired(ctx context.Context, actionCodes []string, cctx model.CheckContext) (*model.Decision, error) {
	var best *model.Decision
	for _, code := range actionCodes {
		decision, err := e.CheckPermission(ctx, code, cctx)
		if err != nil {
			return nil, err
		}
		if !decision.Allowed {
			return decision, nil
		}
		if best == nil || decision.Scope.Rank() > best.Scope.Rank() {
			best = decision
		}
	}
	if best == nil {
		return model.Deny(), nil
	}
	return best, nil
}

// CheckManyAnyAllowed runs a check per code in order and returns the first
// allow; it denies only when every code denies.
func (e *Engine) CheckManyAnyAllowed(ctx context.Context, actionCodes []string, cctx model.CheckContext) (*model.Decision, error) {
	for _, code := range actionCodes {
		decision, err := e.CheckPermission(ctx, code, cctx)
		if err != nil {
			return nil, err
		}
		if decision.Allowed {
			return decision, nil
		}
	}
	return model.Deny(), nil
}

// EnumerateAllPermissions resolves every active action type for the person.
// Checks are independent, so they fan out across a bounded worker pool;
// results land in the original action order. For display and reporting only.
func (e *Engine) EnumerateAllPermissions(ctx context.Context, personID, orgID string) (*model.PermissionReport, error) {
	actionTypes, err := e.directory.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	cctx := model.CheckContext{PersonID: personID, OrgID: orgID}
	entries := make([]model.PermissionEntry, len(actionTypes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.fanout)
	for i, at := range actionTypes {
		i, at := i, at
		g.Go(func() error {
			decision, err := e.CheckPermission(gctx, at.Code, cctx)
			if err != nil {
				return err
			}
			entries[i] = model.PermissionEntry{
				Code:     at.Code,
				Name:     at.Name,
				Category: at.Category,
				Allowed:  decision.Allowed,
				Scope:    decision.Scope,
				Source:   decision.Source,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &model.PermissionReport{Entries: entries}
	report.Summary.Total = len(entries)
	for _, entry := range entries {
		if entry.Allowed {
			report.Summary.Allowed++
		} else {
			report.Summary.Denied++
		}
	}
	return report, nil
}
