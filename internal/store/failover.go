package store

import (
	"context"
	"errors"
	"log"

	"github.com/concrem/helpdesk/internal/model"
)

// Issuance and sector operations historically ran against the hosted
// store with a per-operation fallback to the plain REST API when the
// primary rejected the call. These wrappers keep that behavior, and
// only for these two resources: everything else selects one transport
// at startup and sticks with it. Validation failures are not retried
// on the fallback; they would fail there the same way.

func failoverWorthy(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrDuplicate) &&
		!errors.Is(err, ErrInsufficientStock)
}

// FailoverIssuances wraps a primary IssuanceStore with a fallback one.
type FailoverIssuances struct {
	Primary  IssuanceStore
	Fallback IssuanceStore
}

func (f *FailoverIssuances) List(ctx context.Context) ([]model.ProdutoSaida, error) {
	rows, err := f.Primary.List(ctx)
	if failoverWorthy(err) {
		log.Printf("issuances: primary list failed, using fallback: %v", err)
		return f.Fallback.List(ctx)
	}
	return rows, err
}

func (f *FailoverIssuances) Create(ctx context.Context, s model.ProdutoSaida) (model.ProdutoSaida, error) {
	out, err := f.Primary.Create(ctx, s)
	if failoverWorthy(err) {
		log.Printf("issuances: primary create failed, using fallback: %v", err)
		return f.Fallback.Create(ctx, s)
	}
	return out, err
}

func (f *FailoverIssuances) Update(ctx context.Context, id string, p model.ProdutoSaidaPatch) (model.ProdutoSaida, error) {
	out, err := f.Primary.Update(ctx, id, p)
	if failoverWorthy(err) {
		log.Printf("issuances: primary update failed, using fallback: %v", err)
		return f.Fallback.Update(ctx, id, p)
	}
	return out, err
}

func (f *FailoverIssuances) Delete(ctx context.Context, id string) error {
	err := f.Primary.Delete(ctx, id)
	if failoverWorthy(err) {
		log.Printf("issuances: primary delete failed, using fallback: %v", err)
		return f.Fallback.Delete(ctx, id)
	}
	return err
}

// FailoverSectors wraps a primary SectorStore with a fallback one.
type FailoverSectors struct {
	Primary  SectorStore
	Fallback SectorStore
}

func (f *FailoverSectors) List(ctx context.Context) ([]model.Setor, error) {
	rows, err := f.Primary.List(ctx)
	if failoverWorthy(err) {
		log.Printf("sectors: primary list failed, using fallback: %v", err)
		return f.Fallback.List(ctx)
	}
	return rows, err
}

func (f *FailoverSectors) Create(ctx context.Context, s model.Setor) (model.Setor, error) {
	out, err := f.Primary.Create(ctx, s)
	if failoverWorthy(err) {
		log.Printf("sectors: primary create failed, using fallback: %v", err)
		return f.Fallback.Create(ctx, s)
	}
	return out, err
}

func (f *FailoverSectors) Update(ctx context.Context, id string, p model.SetorPatch) (model.Setor, error) {
	out, err := f.Primary.Update(ctx, id, p)
	if failoverWorthy(err) {
		log.Printf("sectors: primary update failed, using fallback: %v", err)
		return f.Fallback.Update(ctx, id, p)
	}
	return out, err
}

func (f *FailoverSectors) Delete(ctx context.Context, id string) error {
	err := f.Primary.Delete(ctx, id)
	if failoverWorthy(err) {
		log.Printf("sectors: primary delete failed, using fallback: %v", err)
		return f.Fallback.Delete(ctx, id)
	}
	return err
}
