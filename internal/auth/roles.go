package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/domain"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// RequireAdmin ensures an ADMIN is authenticated.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin required")
		}
		return c.Next()
	}
}

// RequireContractor ensures a CONTRACTOR is authenticated.
func RequireContractor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleContractor {
			return apperrors.NewForbidden("contractor required")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
