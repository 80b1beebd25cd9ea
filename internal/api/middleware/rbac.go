package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bizhub/erp-system/internal/core/domain"
)

// RBAC restricts a route to the given roles. The role claim is injected by
// Auth, so RBAC must run after it. Rejections surface domain.ErrForbidden
// and are rendered by the central error handler.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
