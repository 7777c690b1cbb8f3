package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/handler"
	"github.com/concrem/helpdesk/internal/middleware"
	"github.com/concrem/helpdesk/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication endpoints. Unauthenticated
// operations live under /v1/auth; /v1/me needs a valid access token.
// extra typically carries the rate limiter, which keys these routes
// by client IP since no session exists yet.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	for _, m := range extra {
		g.Use(m)
	}
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout works with either a bearer token (all sessions) or a
	// refresh token in the body (one session), so no JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	for _, m := range extra {
		auth.Use(m)
	}
	auth.GET("/me", a.Me)
}

// RegisterResources wires the resource CRUD and report endpoints. All
// of them require a session; user management is admin-only, and the
// equipment handlers enforce the vip read-only rule themselves.
// extra middleware (rate limiter, response cache) is applied after
// JWTAuth so it sees the user_id and tier context keys.
func RegisterResources(e *echo.Echo, h *handler.Handler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireTier(model.TierPadrao, model.TierVIP, model.TierAdmin))
	for _, m := range extra {
		g.Use(m)
	}

	g.GET("/tickets", h.ListTickets)
	g.GET("/tickets/:id", h.GetTicket)
	g.POST("/tickets", h.CreateTicket)
	g.PATCH("/tickets/:id", h.UpdateTicket)
	g.DELETE("/tickets/:id", h.DeleteTicket)

	g.GET("/equipment", h.ListEquipment)
	g.GET("/equipment/codes", h.EquipmentCodes)
	g.POST("/equipment", h.CreateEquipment)
	g.PATCH("/equipment/:id", h.UpdateEquipment)
	g.DELETE("/equipment/:id", h.DeleteEquipment)

	g.GET("/products", h.ListProducts)
	g.POST("/products", h.CreateProduct)
	g.PATCH("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)

	g.GET("/issuances", h.ListIssuances)
	g.POST("/issuances", h.CreateIssuance)
	g.PATCH("/issuances/:id", h.UpdateIssuance)
	g.DELETE("/issuances/:id", h.DeleteIssuance)

	g.GET("/sectors", h.ListSectors)
	g.POST("/sectors", h.CreateSector)
	g.PATCH("/sectors/:id", h.UpdateSector)
	g.DELETE("/sectors/:id", h.DeleteSector)

	g.GET("/reports/dashboard", h.Dashboard)
	g.GET("/reports/services", h.ServiceReport)
	g.GET("/reports/equipment", h.EquipmentReport)
	g.GET("/reports/export", h.Export)

	admin := e.Group("/v1/users")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireTier(model.TierAdmin))
	for _, m := range extra {
		admin.Use(m)
	}
	admin.GET("", h.ListUsers)
	admin.POST("", h.CreateUser)
	admin.PATCH("/:id", h.UpdateUser)
	admin.DELETE("/:id", h.DeleteUser)
}
