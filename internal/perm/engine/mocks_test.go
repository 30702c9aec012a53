package engine

import (
	"context"
	"io"
	"log/slog"

	"permd/internal/perm/model"
	"permd/internal/perm/repository"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of repository.Store for engine tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetActionTypeByCode(ctx context.Context, code string) (*model.ActionType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ActionType), args.Error(1)
}

func (m *MockStore) ListActiveActionTypes(ctx context.Context) ([]*model.ActionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ActionType), args.Error(1)
}

func (m *MockStore) GetActiveOverride(ctx context.Context, personID, actionTypeID string) (*model.UserPermissionOverride, error) {
	args := m.Called(ctx, personID, actionTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserPermissionOverride), args.Error(1)
}

func (m *MockStore) ListActiveMemberships(ctx context.Context, orgID, personID string) ([]*model.Membership, error) {
	args := m.Called(ctx, orgID, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Membership), args.Error(1)
}

func (m *MockStore) GetTeam(ctx context.Context, teamID string) (*model.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *MockStore) ListPositionPermissions(ctx context.Context, positionIDs []string, actionTypeID string) ([]*model.PositionPermission, error) {
	args := m.Called(ctx, positionIDs, actionTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PositionPermission), args.Error(1)
}

func (m *MockStore) ListActiveGroupAssignments(ctx context.Context, orgID, personID string) ([]*model.UserGroupAssignment, error) {
	args := m.Called(ctx, orgID, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UserGroupAssignment), args.Error(1)
}

func (m *MockStore) ListGroupActions(ctx context.Context, groupIDs []string, actionTypeID string) ([]*model.PermissionGroupAction, error) {
	args := m.Called(ctx, groupIDs, actionTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PermissionGroupAction), args.Error(1)
}

func (m *MockStore) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// storeDirectory satisfies ActionDirectory straight from the store, bypassing
// the cached registry so engine tests control lookups from one place.
type storeDirectory struct {
	store repository.Store
}

func (d *storeDirectory) Lookup(ctx context.Context, code string) (*model.ActionType, error) {
	return d.store.GetActionTypeByCode(ctx, code)
}

func (d *storeDirectory) ListActive(ctx context.Context) ([]*model.ActionType, error) {
	return d.store.ListActiveActionTypes(ctx)
}

func newTestEngine(store *MockStore) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(&storeDirectory{store: store}, store, logger, 4)
}

func testAction(id, code, risk string) *model.ActionType {
	return &model.ActionType{
		ID:        id,
		Code:      code,
		Name:      code,
		Category:  "test",
		RiskLevel: risk,
		IsActive:  true,
	}
}
