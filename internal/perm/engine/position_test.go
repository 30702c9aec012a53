package engine

import (
	"context"
	"testing"

	"permd/internal/perm/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func singleMembership() []*model.Membership {
	return []*model.Membership{
		{PersonID: "p1", TeamID: "t1", TeamName: "Platform", PositionID: "pos1", MemberRole: model.MemberRoleMember, IsActive: true},
	}
}

func TestPositionPermissionGrant(t *testing.T) {
	store := new(MockStore)
	store.On("GetActionTypeByCode", mock.Anything, "wiki.create").Return(testAction("a1", "wiki.create", model.RiskLow), nil)
	store.On("GetActiveOverride", mock.Anything, "p1", "a1").Return(nil, nil)
	store.On("ListActiveMemberships", mock.Anything, "org1", "p1").Return(singleMembership(), nil)
	store.On("ListPositionPermissions", mock.Anything, []string{"pos1"}, "a1").Return([]*model.PositionPermission{
		{PositionID: "pos1", ActionTypeID: "a1", Scope: model.ScopeTeam, CanDelegate: true, IsActive: true},
	}, nil)

	eng := newTestEngine(store)
	decision, err := eng.CheckPermission(context.Background(), "wiki.create", model.CheckContext{PersonID: "p1", OrgID: "org1", ResourceTeamID: "t1"})

	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, model.ScopeTeam, decision.Scope)
	assert.Equal(t, model.SourcePosition, decision.Source)
	assert.Equal(t, "pos1", decision.PositionID)
	assert.Equal(t, "t1", decision.TeamID)
	assert.Equal(t, "Platform", decision.TeamName)
	assert.True(t, decision.CanDelegate)
}

func TestPositionScopeTieBreakDeterminism(t *testing.T) {
	// Historical duplicate rows: team and organization for the same action.
	// Organization must win on every call.
	store := new(MockStore)
	store.On("GetActionTypeByCode", mock.Anything, "wiki.create").Return(testAction("a1", "wiki.create", model.RiskLow), nil)
	store.On("GetActiveOverride", mock.Anything, "p1", "a1").Return(nil, nil)
	store.On("ListActiveMemberships", mock.Anything, "org1", "p1").Return(singleMembership(), nil)
	store.On("ListPositionPermissions", mock.Anything, []string{"pos1"}, "a1").Return([]*model.PositionPermission{
		{PositionID: "pos1", ActionTypeID: "a1", Scope: model.ScopeTeam, IsActive: true},
		{PositionID: "pos1", ActionTypeID: "a1", Scope: model.ScopeOrganization, IsActive: true},
	}, nil)

	eng := newTestEngine(store)
	for i := 0; i < 10; i++ {
		decision, err := eng.CheckPermission(context.Background(), "wiki.create", model.CheckContext{PersonID: "p1", OrgID: "org1"})
		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, model.ScopeOrganization, decision.Scope)
	}
}

func TestPositionEqualScopeTieBreakByPositionID(t *testing.T) {
	memberships := []*model.Membership{
		{PersonID: "p1", TeamID: "t1", TeamName: "Platform", PositionID: "pos2", MemberRole: model.MemberRoleMember, IsActive: true},
		{PersonID: "p1", TeamID: "t2", TeamName: "Infra", PositionID: "pos1", MemberRole: model.MemberRoleMember, IsActive: true},
	}
	store := new(MockStore)
	store.On("GetActionTypeByCode", mock.Anything, "wiki.create").Return(testAction("a1", "wiki.create", model.RiskLow), nil)
	store.On("GetActiveOverride", mock.Anything, "p1", "a1").Return(nil, nil)
	store.On("ListActiveMemberships", mock.Anything, "org1", "p1").Return(memberships, nil)
	store.On("ListPositionPermissions", mock.Anything, []string{"pos2", "pos1"}, "a1").Return([]*model.PositionPermission{
		{PositionID: "pos2", ActionTypeID: "a1", Scope: model.ScopeOrganization, IsActive: true},
		{PositionID: "pos1", ActionTypeID: "a1", Scope: model.ScopeOrganization, IsActive: true},
	}, nil)

	eng := newTestEngine(store)
	decision, err := eng.CheckPermission(context.Background(), "wiki.create", model.CheckContext{PersonID: "p1", OrgID: "org1"})

	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, "pos1", decision.PositionID)
	assert.Equal(t, "t2", decision.TeamID)
	assert.Equal(t, "Infra", decision.TeamName)
}

func TestPositionScopeMismatchFallsThrough(t *testing.T) {
	// An own-scope grant against someone else's resource is not a deny; the
	// chain continues down to the final group fallback.
	store := new(MockStore)
	store.On("GetActionTypeByCode", mock.Anything, "wiki.update").Return(testAction("a1", "wiki.update", model.RiskLow), nil)
	store.On("GetActiveOverride", mock.Anything, "p1", "a1").Return(nil, nil)
	store.On("ListActiveMemberships", mock.Anything, "org1", "p1").Return(singleMembership(), nil)
	store.On("ListPositionPermissions", mock.Anything, []string{"pos1"}, "a1").Return([]*model.PositionPermission{
		{PositionID: "pos1", ActionTypeID: "a1", Scope: model.ScopeOwn, IsActive: true},
	}, nil)
	store.On("GetTeam", mock.Anything, "t1").Return(&model.Team{ID: "t1", Name: "Platform"}, nil)
	store.On("ListActiveGroupAssignments", mock.Anything, "org1", "p1").Return([]*model.UserGroupAssignment{}, nil)

	eng := newTestEngine(store)
	decision, err := eng.CheckPermission(context.Background(), "wiki.update", model.CheckContext{PersonID: "p1", OrgID: "org1", ResourceOwnerID: "p2"})

	assert.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, model.SourceNone, decision.Source)
}
