package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireTier enforces that the authenticated user carries one of the
// given tiers in its JWT. It assumes JWTAuth already stored the tier
// under the "tier" context key; requests without an allowed tier get a
// 403.
func RequireTier(tiers ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(tiers))
	for _, t := range tiers {
		allowed[t] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tier, ok := c.Get("tier").(string)
			if !ok || !allowed[tier] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
