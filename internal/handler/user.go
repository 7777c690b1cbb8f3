package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/utils"
)

// User management is admin-only; the router guards the whole group
// with RequireTier(admin).

type userCreateReq struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Setor    string `json:"setor"`
	Cargo    string `json:"cargo"`
	Tier     string `json:"tier"`
}

type userPatchReq struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Setor    *string `json:"setor"`
	Cargo    *string `json:"cargo"`
	Tier     *string `json:"tier"`
}

// ListUsers handles GET /v1/users.
func (h *Handler) ListUsers(c echo.Context) error {
	items, err := h.Users.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list users failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateUser handles POST /v1/users. Passwords arrive in the clear
// over TLS and only the bcrypt hash is stored. Names and sectors are
// kept uppercase like the rest of the product's display data.
func (h *Handler) CreateUser(c echo.Context) error {
	var req userCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	if req.Tier == "" {
		req.Tier = model.TierPadrao
	}
	if !model.ValidTier(req.Tier) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tier"})
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	u := model.Usuario{
		Name:         strings.ToUpper(strings.TrimSpace(req.Name)),
		Username:     req.Username,
		Setor:        strings.ToUpper(strings.TrimSpace(req.Setor)),
		Cargo:        strings.TrimSpace(req.Cargo),
		Tier:         req.Tier,
		PasswordHash: hash,
	}
	created, err := h.Users.Create(c.Request().Context(), u)
	if err != nil {
		return storeError(c, err, "create user failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, created)
}

// UpdateUser handles PATCH /v1/users/:id.
func (h *Handler) UpdateUser(c echo.Context) error {
	var req userPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Tier != nil && !model.ValidTier(*req.Tier) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tier"})
	}

	var p model.UsuarioPatch
	if req.Name != nil {
		up := strings.ToUpper(strings.TrimSpace(*req.Name))
		p.Name = &up
	}
	if req.Username != nil {
		p.Username = req.Username
	}
	if req.Setor != nil {
		up := strings.ToUpper(strings.TrimSpace(*req.Setor))
		p.Setor = &up
	}
	if req.Cargo != nil {
		p.Cargo = req.Cargo
	}
	if req.Tier != nil {
		p.Tier = req.Tier
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := utils.HashPassword(*req.Password, h.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
		}
		p.PasswordHash = &hash
	}

	updated, err := h.Users.Update(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return storeError(c, err, "update user failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, updated)
}

// DeleteUser handles DELETE /v1/users/:id.
func (h *Handler) DeleteUser(c echo.Context) error {
	if err := h.Users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err, "delete user failed")
	}
	h.invalidate(c)
	return c.NoContent(http.StatusNoContent)
}
