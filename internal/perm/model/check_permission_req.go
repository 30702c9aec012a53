package model

import "strings"

type CheckPermissionReq struct {
	ActionCode      string `json:"action_code" validate:"required"`
	ResourceOwnerID string `json:"resource_owner_id,omitempty"`
	ResourceTeamID  string `json:"resource_team_id,omitempty"`
}

func (r *CheckPermissionReq) Validate() error {
	r.ActionCode = strings.TrimSpace(r.ActionCode)
	r.ResourceOwnerID = strings.TrimSpace(r.ResourceOwnerID)
	r.ResourceTeamID = strings.TrimSpace(r.ResourceTeamID)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type CheckManyReq struct {
	ActionCodes     []string `json:"action_codes" validate:"required,min=1,dive,required"`
	ResourceOwnerID string   `json:"resource_owner_id,omitempty"`
	ResourceTeamID  string   `json:"resource_team_id,omitempty"`
}

func (r *CheckManyReq) Validate() error {
	for i, code := range r.ActionCodes {
		r.ActionCodes[i] = strings.TrimSpace(code)
	}
	r.ResourceOwnerID = strings.TrimSpace(r.ResourceOwnerID)
	r.ResourceTeamID = strings.TrimSpace(r.ResourceTeamID)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
