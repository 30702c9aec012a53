package router

import (
	"permd/internal/perm/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, h *handler.PermissionHandler, jwtSecret string) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "x-user-id", "x-org-id"},
	}))

	// Health Check
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")
	v1.Use(handler.RequestIDMiddleware)
	v1.Use(handler.IdentityMiddleware(jwtSecret))

	v1.POST("/permissions/check", h.PostPermissionsCheck)
	v1.POST("/permissions/check-all", h.PostPermissionsCheckAll)
	v1.POST("/permissions/check-any", h.PostPermissionsCheckAny)
	v1.GET("/permissions/me", h.GetPermissionsMe)
}
