package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/assetcode"
	"github.com/concrem/helpdesk/internal/model"
)

// ListEquipment handles GET /v1/equipment. Rows come back in display
// order: asset-code bucket first, numeric code ascending inside it.
func (h *Handler) ListEquipment(c echo.Context) error {
	items, err := h.Equipment.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list equipment failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": assetcode.Order(items)})
}

// EquipmentCodes handles GET /v1/equipment/codes: the id -> display
// code mapping plus a suggestion for the next free code when ?nome=
// and ?tipo= describe a prospective record.
func (h *Handler) EquipmentCodes(c echo.Context) error {
	items, err := h.Equipment.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list equipment failed")
	}
	resp := echo.Map{"codes": assetcode.Assign(items)}
	if nome := c.QueryParam("nome"); nome != "" || c.QueryParam("tipo") != "" {
		resp["suggestion"] = assetcode.Suggest(items, nome, c.QueryParam("tipo"))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateEquipment handles POST /v1/equipment. The submitted patrimony
// is checked against every existing record before the write so a
// colliding code never reaches storage.
func (h *Handler) CreateEquipment(c echo.Context) error {
	if !canEditEquipment(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var e model.Equipamento
	if err := c.Bind(&e); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	e.Nome = strings.TrimSpace(e.Nome)
	if e.Nome == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome is required"})
	}
	if e.Status == "" {
		e.Status = model.EquipDisponivel
	}
	if !model.ValidEquipStatus(e.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx := c.Request().Context()
	existing, err := h.Equipment.List(ctx)
	if err != nil {
		return storeError(c, err, "list equipment failed")
	}
	if err := assetcode.CheckDuplicate(existing, e.Patrimonio, ""); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	created, err := h.Equipment.Create(ctx, e)
	if err != nil {
		return storeError(c, err, "create equipment failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, created)
}

// UpdateEquipment handles PATCH /v1/equipment/:id. A changed patrimony
// goes through the same duplicate guard, skipping the record itself.
func (h *Handler) UpdateEquipment(c echo.Context) error {
	if !canEditEquipment(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id := c.Param("id")
	var p model.EquipamentoPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if p.Status != nil && !model.ValidEquipStatus(*p.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx := c.Request().Context()
	if p.Patrimonio != nil {
		existing, err := h.Equipment.List(ctx)
		if err != nil {
			return storeError(c, err, "list equipment failed")
		}
		if err := assetcode.CheckDuplicate(existing, *p.Patrimonio, id); err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
	}

	updated, err := h.Equipment.Update(ctx, id, p)
	if err != nil {
		return storeError(c, err, "update equipment failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, updated)
}

// DeleteEquipment handles DELETE /v1/equipment/:id.
func (h *Handler) DeleteEquipment(c echo.Context) error {
	if !canEditEquipment(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Equipment.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err, "delete equipment failed")
	}
	h.invalidate(c)
	return c.NoContent(http.StatusNoContent)
}
