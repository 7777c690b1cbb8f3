package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/model"
)

// ListProducts handles GET /v1/products.
func (h *Handler) ListProducts(c echo.Context) error {
	items, err := h.Products.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list products failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateProduct handles POST /v1/products.
func (h *Handler) CreateProduct(c echo.Context) error {
	var p model.Produto
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p.Nome = strings.TrimSpace(p.Nome)
	if p.Nome == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome is required"})
	}
	if p.Estoque < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "estoque cannot be negative"})
	}
	created, err := h.Products.Create(c.Request().Context(), p)
	if err != nil {
		return storeError(c, err, "create product failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, created)
}

// UpdateProduct handles PATCH /v1/products/:id.
func (h *Handler) UpdateProduct(c echo.Context) error {
	var p model.ProdutoPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if p.Estoque != nil && *p.Estoque < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "estoque cannot be negative"})
	}
	updated, err := h.Products.Update(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return storeError(c, err, "update product failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles DELETE /v1/products/:id.
func (h *Handler) DeleteProduct(c echo.Context) error {
	if err := h.Products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err, "delete product failed")
	}
	h.invalidate(c)
	return c.NoContent(http.StatusNoContent)
}

// ListIssuances handles GET /v1/issuances.
func (h *Handler) ListIssuances(c echo.Context) error {
	items, err := h.Issuances.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list issuances failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateIssuance handles POST /v1/issuances. The store decrements the
// product's stock in the same operation; a quantity exceeding the
// available stock yields a 422.
func (h *Handler) CreateIssuance(c echo.Context) error {
	var s model.ProdutoSaida
	if err := c.Bind(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if s.ProdutoID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "produto_id is required"})
	}
	if s.Quantidade <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantidade must be positive"})
	}
	if s.Data == "" {
		s.Data = time.Now().UTC().Format("2006-01-02")
	}
	created, err := h.Issuances.Create(c.Request().Context(), s)
	if err != nil {
		return storeError(c, err, "create issuance failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, created)
}

// UpdateIssuance handles PATCH /v1/issuances/:id. The product link is
// immutable; quantity edits do not retroactively adjust stock.
func (h *Handler) UpdateIssuance(c echo.Context) error {
	var p model.ProdutoSaidaPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if p.Quantidade != nil && *p.Quantidade <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantidade must be positive"})
	}
	updated, err := h.Issuances.Update(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return storeError(c, err, "update issuance failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, updated)
}

// DeleteIssuance handles DELETE /v1/issuances/:id.
func (h *Handler) DeleteIssuance(c echo.Context) error {
	if err := h.Issuances.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err, "delete issuance failed")
	}
	h.invalidate(c)
	return c.NoContent(http.StatusNoContent)
}
