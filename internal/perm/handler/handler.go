package handler

import (
	"context"
	"net/http"
	"time"

	"permd/internal/perm/model"

	"github.com/labstack/echo/v4"
)

// PermissionChecker is the engine surface the HTTP adapter consumes.
type PermissionChecker interface {
	CheckPermission(ctx context.Context, actionCode string, cctx model.CheckContext) (*model.Decision, error)
	CheckManyAllRequired(ctx context.Context, actionCodes []string, cctx model.CheckContext) (*model.Decision, error)
	CheckManyAnyAllowed(ctx context.Context, actionCodes []string, cctx model.CheckContext) (*model.Decision, error)
	EnumerateAllPermissions(ctx context.Context, personID, orgID string) (*model.PermissionReport, error)
}

type PermissionHandler struct {
	Checker PermissionChecker
}

func NewPermissionHandler(checker PermissionChecker) *PermissionHandler {
	return &PermissionHandler{Checker: checker}
}

// CheckPermissionResp carries the evaluated action code alongside the
// decision so denied callers can diagnose client-side without any resolver
// internals leaking.
type CheckPermissionResp struct {
	ActionCode string          `json:"action_code"`
	Decision   *model.Decision `json:"decision"`
}

type CheckManyResp struct {
	ActionCodes []string        `json:"action_codes"`
	Decision    *model.Decision `json:"decision"`
}

// PostPermissionsCheck handles POST /permissions/check
func (h *PermissionHandler) PostPermissionsCheck(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.CheckPermissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	start := time.Now()
	decision, err := h.Checker.CheckPermission(c.Request().Context(), req.ActionCode, model.CheckContext{
		PersonID:        identity.PersonID,
		OrgID:           identity.OrgID,
		ResourceOwnerID: req.ResourceOwnerID,
		ResourceTeamID:  req.ResourceTeamID,
	})
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	observeDecision(decision, time.Since(start))

	return c.JSON(decisionStatus(decision), CheckPermissionResp{
		ActionCode: req.ActionCode,
		Decision:   decision,
	})
}

// PostPermissionsCheckAll handles POST /permissions/check-all
func (h *PermissionHandler) PostPermissionsCheckAll(c echo.Context) error {
	return h.checkMany(c, h.Checker.CheckManyAllRequired)
}

// PostPermissionsCheckAny handles POST /permissions/check-any
func (h *PermissionHandler) PostPermissionsCheckAny(c echo.Context) error {
	return h.checkMany(c, h.Checker.CheckManyAnyAllowed)
}

func (h *PermissionHandler) checkMany(
	c echo.Context,
	check func(ctx context.Context, actionCodes []string, cctx model.CheckContext) (*model.Decision, error),
) error {
	identity, err := callerIdentity(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.CheckManyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	start := time.Now()
	decision, err := check(c.Request().Context(), req.ActionCodes, model.CheckContext{
		PersonID:        identity.PersonID,
		OrgID:           identity.OrgID,
		ResourceOwnerID: req.ResourceOwnerID,
		ResourceTeamID:  req.ResourceTeamID,
	})
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	observeDecision(decision, time.Since(start))

	return c.JSON(decisionStatus(decision), CheckManyResp{
		ActionCodes: req.ActionCodes,
		Decision:    decision,
	})
}

// GetPermissionsMe handles GET /permissions/me — the full permission matrix
// for the caller, for display purposes.
func (h *PermissionHandler) GetPermissionsMe(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	report, err := h.Checker.EnumerateAllPermissions(c.Request().Context(), identity.PersonID, identity.OrgID)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, report)
}

func decisionStatus(decision *model.Decision) int {
	if decision.Allowed {
		return http.StatusOK
	}
	return http.StatusForbidden
}

// HealthCheck handles GET /health
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
