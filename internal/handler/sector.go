package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/model"
)

// ListSectors handles GET /v1/sectors.
func (h *Handler) ListSectors(c echo.Context) error {
	items, err := h.Sectors.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list sectors failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateSector handles POST /v1/sectors. Sector names are canonical
// uppercase; the stores enforce the casing on write.
func (h *Handler) CreateSector(c echo.Context) error {
	var s model.Setor
	if err := c.Bind(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s.Nome = strings.TrimSpace(s.Nome)
	if s.Nome == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome is required"})
	}
	created, err := h.Sectors.Create(c.Request().Context(), s)
	if err != nil {
		return storeError(c, err, "create sector failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, created)
}

// UpdateSector handles PATCH /v1/sectors/:id.
func (h *Handler) UpdateSector(c echo.Context) error {
	var p model.SetorPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	updated, err := h.Sectors.Update(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return storeError(c, err, "update sector failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, updated)
}

// DeleteSector handles DELETE /v1/sectors/:id.
func (h *Handler) DeleteSector(c echo.Context) error {
	if err := h.Sectors.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err, "delete sector failed")
	}
	h.invalidate(c)
	return c.NoContent(http.StatusNoContent)
}
