// Package engine implements the permission-resolution chain.
//
// A check runs the resolvers in strict order: override, position permission,
// leadership fallback, inheritance, group fallback. Each resolver either
// produces a decision or passes through to the next; the first decision wins.
// Nothing after an override can override an override.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"permd/internal/perm/model"
	"permd/internal/perm/repository"
)

// ActionDirectory is the read-only lookup of action codes, normally backed by
// the cached registry.
type ActionDirectory interface {
	Lookup(ctx context.Context, code string) (*model.ActionType, error)
	ListActive(ctx context.Context) ([]*model.ActionType, error)
}

type Engine struct {
	directory ActionDirectory
	store     repository.Store
	logger    *slog.Logger
	// bound on concurrent single checks inside batch operations
	fanout int
}

func New(directory ActionDirectory, store repository.Store, logger *slog.Logger, fanout int) *Engine {
	if fanout < 1 {
		fanout = 1
	}
	return &Engine{
		directory: directory,
		store:     store,
		logger:    logger,
		fanout:    fanout,
	}
}

// checkState carries per-check data across the resolver chain.
type checkState struct {
	action      *model.ActionType
	cctx        model.CheckContext
	memberships []*model.Membership
	// memoized team lookups for the hierarchy walk
	teams map[string]*model.Team
}

// resolverFunc returns a decision, or nil to pass through to the next resolver.
type resolverFunc func(ctx context.Context, st *checkState) (*model.Decision, error)

// CheckPermission decides whether the person in cctx may perform the action.
// A store failure is returned as an error, never folded into a deny, so
// callers can tell "not permitted" from "could not determine".
func (e *Engine) CheckPermission(ctx context.Context, actionCode string, cctx model.CheckContext) (*model.Decision, error) {
	action, err := e.directory.Lookup(ctx, actionCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Almost certainly a typo in the calling code, not an attack.
			e.logger.Warn("permission check for unknown action code",
				"action_code", actionCode, "person_id", cctx.PersonID)
			return model.Deny(), nil
		}
		return nil, err
	}

	if decision, err := e.resolveOverride(ctx, cctx.PersonID, action.ID); err != nil {
		return nil, err
	} else if decision != nil {
		return decision, nil
	}

	memberships, err := e.store.ListActiveMemberships(ctx, cctx.OrgID, cctx.PersonID)
	if err != nil {
		return nil, err
	}

	st := &checkState{
		action:      action,
		cctx:        cctx,
		memberships: memberships,
		teams:       make(map[string]*model.Team),
	}

	// No team affiliation at all: group grants are the only thing left.
	if len(memberships) == 0 {
		return e.resolveGroupFallback(ctx, st)
	}

	chain := []resolverFunc{
		e.resolvePositionPermission,
		e.resolveLeadership,
		e.resolveInheritance,
	}
	for _, resolve := range chain {
		decision, err := resolve(ctx, st)
		if err != nil {
			return nil, err
		}
		if decision != nil {
			return decision, nil
		}
	}

	return e.resolveGroupFallback(ctx, st)
}
