package handler

import (
	"errors"
	"net/http"

	"permd/internal/perm/model"
)

var ErrUnauthorized = errors.New("unauthorized")

// httpError maps errors to HTTP status and body. Anything that is not a
// caller fault is treated as a store failure: the protected operation must
// refuse to proceed, but with a status callers can tell apart from a clean
// deny, so outages are not mistaken for revocations.
func httpError(err error) (int, interface{}) {
	var code string
	var msg string
	var status int

	switch {
	case errors.Is(err, ErrUnauthorized):
		status = http.StatusUnauthorized
		code = "unauthorized"
		msg = "Caller identity is required"
	default:
		status = http.StatusServiceUnavailable
		code = "store_unavailable"
		msg = "Permission check could not be completed"
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: msg},
	}
}

func validationError(err error) model.ErrorResponse {
	var detail *model.ErrorDetail
	if errors.As(err, &detail) {
		return model.ErrorResponse{Error: *detail}
	}
	return model.ErrorResponse{Error: *model.FormatValidationError(err)}
}
