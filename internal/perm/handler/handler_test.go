package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"permd/internal/perm/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) CheckPermission(ctx context.Context, actionCode string, cctx model.CheckContext) (*model.Decision, error) {
	args := m.Called(ctx, actionCode, cctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Decision), args.Error(1)
}

func (m *MockChecker) CheckManyAllRequired(ctx context.Context, actionCodes []string, cctx model.CheckContext) (*model.Decision, error) {
	args := m.Called(ctx, actionCodes, cctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Decision), args.Error(1)
}

func (m *MockChecker) CheckManyAnyAllowed(ctx context.Context, actionCodes []string, cctx model.CheckContext) (*model.Decision, error) {
	args := m.Called(ctx, actionCodes, cctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Decision), args.Error(1)
}

func (m *MockChecker) EnumerateAllPermissions(ctx context.Context, personID, orgID string) (*model.PermissionReport, error) {
	args := m.Called(ctx, personID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PermissionReport), args.Error(1)
}

func perform(h echo.HandlerFunc, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	wrapped := IdentityMiddleware("")(h)
	_ = wrapped(c)
	return rec
}

func authHeaders() map[string]string {
	return map[string]string{"x-user-id": "p1", "x-org-id": "org1"}
}

func TestPostPermissionsCheckAllowed(t *testing.T) {
	checker := new(MockChecker)
	checker.On("CheckPermission", mock.Anything, "wiki.create", model.CheckContext{
		PersonID: "p1", OrgID: "org1", ResourceTeamID: "t1",
	}).Return(&model.Decision{Allowed: true, Scope: model.ScopeTeam, Source: model.SourcePosition}, nil)

	h := NewPermissionHandler(checker)
	rec := perform(h.PostPermissionsCheck, http.MethodPost, "/api/v1/permissions/check",
		`{"action_code":"wiki.create","resource_team_id":"t1"}`, authHeaders())

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CheckPermissionResp
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "wiki.create", resp.ActionCode)
	assert.True(t, resp.Decision.Allowed)
	assert.Equal(t, model.ScopeTeam, resp.Decision.Scope)
}

func TestPostPermissionsCheckDenied(t *testing.T) {
	checker := new(MockChecker)
	checker.On("CheckPermission", mock.Anything, "wiki.delete", mock.Anything).
		Return(&model.Decision{Allowed: false, Source: model.SourceNone}, nil)

	h := NewPermissionHandler(checker)
	rec := perform(h.PostPermissionsCheck, http.MethodPost, "/api/v1/permissions/check",
		`{"action_code":"wiki.delete"}`, authHeaders())

	// Deny is a 403 that still carries the evaluated action code and
	// scope/source, nothing about resolver internals.
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var resp CheckPermissionResp
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "wiki.delete", resp.ActionCode)
	assert.False(t, resp.Decision.Allowed)
	assert.Equal(t, model.SourceNone, resp.Decision.Source)
}

func TestPostPermissionsCheckStoreUnavailable(t *testing.T) {
	checker := new(MockChecker)
	checker.On("CheckPermission", mock.Anything, "wiki.create", mock.Anything).
		Return(nil, errors.New("connection refused"))

	h := NewPermissionHandler(checker)
	rec := perform(h.PostPermissionsCheck, http.MethodPost, "/api/v1/permissions/check",
		`{"action_code":"wiki.create"}`, authHeaders())

	// Outage is not a deny
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp model.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "store_unavailable", resp.Error.Code)
}

func TestPostPermissionsCheckMissingIdentity(t *testing.T) {
	checker := new(MockChecker)
	h := NewPermissionHandler(checker)
	rec := perform(h.PostPermissionsCheck, http.MethodPost, "/api/v1/permissions/check",
		`{"action_code":"wiki.create"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	checker.AssertNotCalled(t, "CheckPermission", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostPermissionsCheckMissingActionCode(t *testing.T) {
	checker := new(MockChecker)
	h := NewPermissionHandler(checker)
	rec := perform(h.PostPermissionsCheck, http.MethodPost, "/api/v1/permissions/check",
		`{"action_code":"  "}`, authHeaders())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostPermissionsCheckAll(t *testing.T) {
	checker := new(MockChecker)
	checker.On("CheckManyAllRequired", mock.Anything, []string{"doc.read", "doc.write"}, mock.Anything).
		Return(&model.Decision{Allowed: true, Scope: model.ScopeOrganization, Source: model.SourcePosition}, nil)

	h := NewPermissionHandler(checker)
	rec := perform(h.PostPermissionsCheckAll, http.MethodPost, "/api/v1/permissions/check-all",
		`{"action_codes":["doc.read","doc.write"]}`, authHeaders())

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CheckManyResp
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"doc.read", "doc.write"}, resp.ActionCodes)
	assert.Equal(t, model.ScopeOrganization, resp.Decision.Scope)
}

func TestPostPermissionsCheckAnyDenied(t *testing.T) {
	checker := new(MockChecker)
	checker.On("CheckManyAnyAllowed", mock.Anything, []string{"doc.read"}, mock.Anything).
		Return(&model.Decision{Allowed: false, Source: model.SourceNone}, nil)

	h := NewPermissionHandler(checker)
	rec := perform(h.PostPermissionsCheckAny, http.MethodPost, "/api/v1/permissions/check-any",
		`{"action_codes":["doc.read"]}`, authHeaders())

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetPermissionsMe(t *testing.T) {
	checker := new(MockChecker)
	checker.On("EnumerateAllPermissions", mock.Anything, "p1", "org1").Return(&model.PermissionReport{
		Entries: []model.PermissionEntry{
			{Code: "doc.read", Allowed: true, Scope: model.ScopeTeam, Source: model.SourceGroup},
			{Code: "doc.write", Allowed: false, Source: model.SourceNone},
		},
		Summary: model.PermissionSummary{Total: 2, Allowed: 1, Denied: 1},
	}, nil)

	h := NewPermissionHandler(checker)
	rec := perform(h.GetPermissionsMe, http.MethodGet, "/api/v1/permissions/me", "", authHeaders())

	assert.Equal(t, http.StatusOK, rec.Code)

	var report model.PermissionReport
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Len(t, report.Entries, 2)
	assert.Equal(t, report.Summary.Total, report.Summary.Allowed+report.Summary.Denied)
}
