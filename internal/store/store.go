// Package store declares the persistence contract consumed by the
// HTTP handlers: one interface per resource, listing newest-first,
// creating, patching by id and deleting. Two implementations exist,
// the MySQL repositories (primary) and the REST fallback transport;
// the choice is made once at startup and never per call.
package store

import (
	"context"

	"github.com/concrem/helpdesk/internal/model"
)

type TicketStore interface {
	List(ctx context.Context) ([]model.Ticket, error)
	Get(ctx context.Context, id string) (model.Ticket, error)
	Create(ctx context.Context, t model.Ticket) (model.Ticket, error)
	Update(ctx context.Context, id string, p model.TicketPatch) (model.Ticket, error)
	Delete(ctx context.Context, id string) error
}

type EquipmentStore interface {
	List(ctx context.Context) ([]model.Equipamento, error)
	Create(ctx context.Context, e model.Equipamento) (model.Equipamento, error)
	Update(ctx context.Context, id string, p model.EquipamentoPatch) (model.Equipamento, error)
	Delete(ctx context.Context, id string) error
}

type ProductStore interface {
	List(ctx context.Context) ([]model.Produto, error)
	Create(ctx context.Context, p model.Produto) (model.Produto, error)
	Update(ctx context.Context, id string, p model.ProdutoPatch) (model.Produto, error)
	Delete(ctx context.Context, id string) error
}

// IssuanceStore records product issuances. Create decrements the
// referenced product's stock atomically and fails with
// ErrInsufficientStock instead of driving it below zero.
type IssuanceStore interface {
	List(ctx context.Context) ([]model.ProdutoSaida, error)
	Create(ctx context.Context, s model.ProdutoSaida) (model.ProdutoSaida, error)
	Update(ctx context.Context, id string, p model.ProdutoSaidaPatch) (model.ProdutoSaida, error)
	Delete(ctx context.Context, id string) error
}

type SectorStore interface {
	List(ctx context.Context) ([]model.Setor, error)
	Create(ctx context.Context, s model.Setor) (model.Setor, error)
	Update(ctx context.Context, id string, p model.SetorPatch) (model.Setor, error)
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	List(ctx context.Context) ([]model.Usuario, error)
	Get(ctx context.Context, id string) (model.Usuario, error)
	GetByUsername(ctx context.Context, username string) (model.Usuario, error)
	Create(ctx context.Context, u model.Usuario) (model.Usuario, error)
	Update(ctx context.Context, id string, p model.UsuarioPatch) (model.Usuario, error)
	Delete(ctx context.Context, id string) error
}
