package handler

import (
	"context"
	"fmt"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
)

// In-memory stores for handler tests. They implement just enough of
// the contracts to drive the endpoints; error injection happens via
// the err* fields.

type fakeTickets struct {
	items     map[string]model.Ticket
	updateErr []error // popped per Update call, nil entries mean success
	updates   []model.TicketPatch
}

func newFakeTickets(ts ...model.Ticket) *fakeTickets {
	f := &fakeTickets{items: map[string]model.Ticket{}}
	for _, t := range ts {
		f.items[t.ID] = t
	}
	return f
}

func (f *fakeTickets) List(context.Context) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for _, t := range f.items {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTickets) Get(_ context.Context, id string) (model.Ticket, error) {
	t, ok := f.items[id]
	if !ok {
		return model.Ticket{}, store.ErrNotFound
	}
	return t, nil
}

func (f *fakeTickets) Create(_ context.Context, t model.Ticket) (model.Ticket, error) {
	if t.ID == "" {
		t.ID = fmt.Sprintf("t%d", len(f.items)+1)
	}
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTickets) Update(_ context.Context, id string, p model.TicketPatch) (model.Ticket, error) {
	if len(f.updateErr) > 0 {
		err := f.updateErr[0]
		f.updateErr = f.updateErr[1:]
		if err != nil {
			return model.Ticket{}, err
		}
	}
	t, ok := f.items[id]
	if !ok {
		return model.Ticket{}, store.ErrNotFound
	}
	f.updates = append(f.updates, p)
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.StartedAt != nil {
		t.StartedAt = p.StartedAt
	}
	if p.CompletedAt != nil {
		t.CompletedAt = p.CompletedAt
	}
	if p.DurationMinutes != nil {
		t.DurationMinutes = p.DurationMinutes
	}
	if p.DurationText != nil {
		t.DurationText = p.DurationText
	}
	f.items[id] = t
	return t, nil
}

func (f *fakeTickets) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeEquipment struct {
	items   []model.Equipamento
	created []model.Equipamento
}

func (f *fakeEquipment) List(context.Context) ([]model.Equipamento, error) {
	return append([]model.Equipamento(nil), f.items...), nil
}

func (f *fakeEquipment) Create(_ context.Context, e model.Equipamento) (model.Equipamento, error) {
	if e.ID == "" {
		e.ID = fmt.Sprintf("e%d", len(f.items)+1)
	}
	f.items = append(f.items, e)
	f.created = append(f.created, e)
	return e, nil
}

func (f *fakeEquipment) Update(_ context.Context, id string, p model.EquipamentoPatch) (model.Equipamento, error) {
	for i, e := range f.items {
		if e.ID == id {
			if p.Patrimonio != nil {
				e.Patrimonio = *p.Patrimonio
			}
			if p.Status != nil {
				e.Status = *p.Status
			}
			f.items[i] = e
			return e, nil
		}
	}
	return model.Equipamento{}, store.ErrNotFound
}

func (f *fakeEquipment) Delete(_ context.Context, id string) error {
	for i, e := range f.items {
		if e.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeIssuances struct {
	stock map[string]int
	items []model.ProdutoSaida
}

func (f *fakeIssuances) List(context.Context) ([]model.ProdutoSaida, error) {
	return append([]model.ProdutoSaida(nil), f.items...), nil
}

func (f *fakeIssuances) Create(_ context.Context, s model.ProdutoSaida) (model.ProdutoSaida, error) {
	have, ok := f.stock[s.ProdutoID]
	if !ok {
		return model.ProdutoSaida{}, store.ErrNotFound
	}
	if have < s.Quantidade {
		return model.ProdutoSaida{}, store.ErrInsufficientStock
	}
	f.stock[s.ProdutoID] = have - s.Quantidade
	s.ID = fmt.Sprintf("s%d", len(f.items)+1)
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeIssuances) Update(_ context.Context, id string, p model.ProdutoSaidaPatch) (model.ProdutoSaida, error) {
	for i, s := range f.items {
		if s.ID == id {
			if p.Quantidade != nil {
				s.Quantidade = *p.Quantidade
			}
			f.items[i] = s
			return s, nil
		}
	}
	return model.ProdutoSaida{}, store.ErrNotFound
}

func (f *fakeIssuances) Delete(_ context.Context, id string) error {
	for i, s := range f.items {
		if s.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
