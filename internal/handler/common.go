package handler // handler defines the HTTP layer over the store interfaces

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/queue"
	"github.com/concrem/helpdesk/internal/store"
)

// Handler bundles the resource stores consumed by the CRUD endpoints.
// Invalidate, when set, drops the Redis response cache after every
// successful write; it is nil when caching is disabled.
type Handler struct {
	Tickets    store.TicketStore
	Equipment  store.EquipmentStore
	Products   store.ProductStore
	Issuances  store.IssuanceStore
	Sectors    store.SectorStore
	Users      store.UserStore
	BcryptCost int
	Invalidate func(ctx context.Context)

	// PublishCompleted sends a ticket-completed event to the broker; nil
	// disables publishing. Failures are logged and never surface to the
	// client.
	PublishCompleted func(ctx context.Context, ev queue.TicketCompletedEvent) error
}

// invalidate drops cached GET responses after a write.
func (h *Handler) invalidate(c echo.Context) {
	if h.Invalidate != nil {
		h.Invalidate(c.Request().Context())
	}
}

// currentTier returns the tier claim stored by the JWT middleware.
func currentTier(c echo.Context) string {
	t, _ := c.Get("tier").(string)
	return t
}

// canEditEquipment applies the asset permission rule: vip users are
// read-only on equipment, everyone else with a session may write.
func canEditEquipment(c echo.Context) bool {
	return currentTier(c) != model.TierVIP
}

// storeError translates store sentinels into JSON error responses.
// Unrecognized errors become a 500 with the supplied message so driver
// details never leak to clients.
func storeError(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, store.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already exists"})
	case errors.Is(err, store.ErrInsufficientStock):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "insufficient stock"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}
