package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/lifecycle"
	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/queue"
	"github.com/concrem/helpdesk/internal/store"
)

// ListTickets handles GET /v1/tickets.
func (h *Handler) ListTickets(c echo.Context) error {
	items, err := h.Tickets.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list tickets failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetTicket handles GET /v1/tickets/:id.
func (h *Handler) GetTicket(c echo.Context) error {
	t, err := h.Tickets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(c, err, "load ticket failed")
	}
	return c.JSON(http.StatusOK, t)
}

// CreateTicket handles POST /v1/tickets. New tickets open in "Aberto"
// with priority "media" unless the caller says otherwise.
func (h *Handler) CreateTicket(c echo.Context) error {
	var t model.Ticket
	if err := c.Bind(&t); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t.Titulo = strings.TrimSpace(t.Titulo)
	if t.Titulo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "titulo is required"})
	}
	if t.Status == "" {
		t.Status = model.StatusAberto
	}
	if !model.ValidStatus(t.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if t.Prioridade == "" {
		t.Prioridade = model.PrioridadeMedia
	}
	if !model.ValidPrioridade(t.Prioridade) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid prioridade"})
	}
	if t.Data == "" {
		t.Data = time.Now().UTC().Format("2006-01-02")
	}

	created, err := h.Tickets.Create(c.Request().Context(), t)
	if err != nil {
		return storeError(c, err, "create ticket failed")
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, created)
}

// UpdateTicket handles PATCH /v1/tickets/:id. Status transitions run
// through the lifecycle rules: moving to "Em Andamento" stamps
// started_at, moving to "Concluído" stamps completed_at and computes
// the service duration once. When the underlying schema predates those
// columns the write is retried once with a status-only patch.
func (h *Handler) UpdateTicket(c echo.Context) error {
	id := c.Param("id")
	var p model.TicketPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if p.Status != nil && !model.ValidStatus(*p.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if p.Prioridade != nil && !model.ValidPrioridade(*p.Prioridade) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid prioridade"})
	}

	ctx := c.Request().Context()
	current, err := h.Tickets.Get(ctx, id)
	if err != nil {
		return storeError(c, err, "load ticket failed")
	}

	p = lifecycle.Apply(current, p, time.Now().UTC())

	updated, err := h.Tickets.Update(ctx, id, p)
	if errors.Is(err, store.ErrUnknownColumn) {
		updated, err = h.Tickets.Update(ctx, id, lifecycle.StatusOnly(p))
	}
	if err != nil {
		return storeError(c, err, "update ticket failed")
	}
	h.invalidate(c)

	completing := p.Status != nil && *p.Status == model.StatusConcluido &&
		current.Status != model.StatusConcluido
	if completing {
		h.publishCompleted(updated)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteTicket handles DELETE /v1/tickets/:id.
func (h *Handler) DeleteTicket(c echo.Context) error {
	if err := h.Tickets.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err, "delete ticket failed")
	}
	h.invalidate(c)
	return c.NoContent(http.StatusNoContent)
}

// publishCompleted fires a TicketCompletedEvent in the background.
// Broker outages never block or fail the request.
func (h *Handler) publishCompleted(t model.Ticket) {
	if h.PublishCompleted == nil {
		return
	}
	ev := queue.TicketCompletedEvent{
		TicketID:    t.ID,
		Titulo:      t.Titulo,
		Solicitante: t.Solicitante,
		Setor:       t.Setor,
		Tecnico:     t.Usuario,
		Prioridade:  t.Prioridade,
		IsVIP:       t.IsVIP,
	}
	if t.DurationMinutes != nil {
		ev.DurationMinutes = *t.DurationMinutes
	}
	if t.DurationText != nil {
		ev.DurationText = *t.DurationText
	}
	if t.CompletedAt != nil {
		ev.CompletedAt = *t.CompletedAt
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.PublishCompleted(ctx, ev); err != nil {
			log.Printf("ticket %s: publish completed event failed: %v", t.ID, err)
		}
	}()
}
