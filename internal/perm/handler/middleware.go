package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := c.Request().Header.Get(echo.HeaderXRequestID)
		if reqID == "" {
			// Generate random ID
			b := make([]byte, 16)
			_, _ = rand.Read(b)
			reqID = hex.EncodeToString(b)
		}
		c.Response().Header().Set(echo.HeaderXRequestID, reqID)
		return next(c)
	}
}

const identityContextKey = "caller_identity"

// Identity is the caller the session layer resolved for this request.
type Identity struct {
	PersonID string
	OrgID    string
}

// IdentityMiddleware surfaces the caller identity from a Bearer token (HS256,
// claims "sub" and "org_id") or, when no secret is configured or no token is
// present, from the x-user-id / x-org-id headers a trusted gateway sets.
// Authentication itself happens upstream; this only extracts who is calling.
func IdentityMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := identityFromToken(c, jwtSecret)
			if !ok {
				identity = Identity{
					PersonID: c.Request().Header.Get("x-user-id"),
					OrgID:    c.Request().Header.Get("x-org-id"),
				}
			}
			if identity.PersonID != "" {
				c.Set(identityContextKey, identity)
			}
			return next(c)
		}
	}
}

func identityFromToken(c echo.Context, jwtSecret string) (Identity, bool) {
	if jwtSecret == "" {
		return Identity{}, false
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return Identity{}, false
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, false
	}

	identity := Identity{}
	if sub, ok := claims["sub"].(string); ok {
		identity.PersonID = sub
	}
	if org, ok := claims["org_id"].(string); ok {
		identity.OrgID = org
	}
	return identity, identity.PersonID != ""
}

func callerIdentity(c echo.Context) (Identity, error) {
	identity, ok := c.Get(identityContextKey).(Identity)
	if !ok || identity.PersonID == "" {
		return Identity{}, ErrUnauthorized
	}
	return identity, nil
}
