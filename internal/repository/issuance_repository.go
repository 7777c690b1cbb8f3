package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
)

type IssuanceRepo struct{ DB *sql.DB }

func NewIssuanceRepo(db *sql.DB) *IssuanceRepo { return &IssuanceRepo{DB: db} }

func scanSaida(row interface{ Scan(...any) error }) (model.ProdutoSaida, error) {
	var (
		s                             model.ProdutoSaida
		destinatario, data, createdAt sql.NullString
	)
	if err := row.Scan(&s.ID, &s.ProdutoID, &s.Quantidade, &destinatario, &data, &createdAt); err != nil {
		return model.ProdutoSaida{}, err
	}
	s.Destinatario = destinatario.String
	s.Data = data.String
	s.CreatedAt = createdAt.String
	return s, nil
}

func (r *IssuanceRepo) List(ctx context.Context) ([]model.ProdutoSaida, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, produto_id, quantidade, destinatario, data, created_at FROM produto_saidas ORDER BY created_at DESC")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	out := []model.ProdutoSaida{}
	for rows.Next() {
		s, err := scanSaida(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *IssuanceRepo) get(ctx context.Context, id string) (model.ProdutoSaida, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id, produto_id, quantidade, destinatario, data, created_at FROM produto_saidas WHERE id = ? LIMIT 1", id)
	s, err := scanSaida(row)
	if err != nil {
		return model.ProdutoSaida{}, translateErr(err)
	}
	return s, nil
}

// Create records an issuance and decrements the product's stock in
// the same transaction. The guarded UPDATE keeps estoque from going
// negative; when it matches no row the product either does not exist
// or lacks stock, and the distinction is resolved with one SELECT.
func (r *IssuanceRepo) Create(ctx context.Context, s model.ProdutoSaida) (model.ProdutoSaida, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.ProdutoSaida{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE produtos SET estoque = estoque - ? WHERE id = ? AND estoque >= ?",
		s.Quantidade, s.ProdutoID, s.Quantidade)
	if err != nil {
		return model.ProdutoSaida{}, translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var estoque int
		err := tx.QueryRowContext(ctx, "SELECT estoque FROM produtos WHERE id = ?", s.ProdutoID).Scan(&estoque)
		if err != nil {
			return model.ProdutoSaida{}, translateErr(err)
		}
		return model.ProdutoSaida{}, store.ErrInsufficientStock
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO produto_saidas (id, produto_id, quantidade, destinatario, data) VALUES (?,?,?,?,?)",
		s.ID, s.ProdutoID, s.Quantidade, nullable(s.Destinatario), nullable(s.Data)); err != nil {
		return model.ProdutoSaida{}, translateErr(err)
	}
	if err := tx.Commit(); err != nil {
		return model.ProdutoSaida{}, err
	}
	return r.get(ctx, s.ID)
}

func (r *IssuanceRepo) Update(ctx context.Context, id string, p model.ProdutoSaidaPatch) (model.ProdutoSaida, error) {
	var set setClause
	if p.Quantidade != nil {
		set.add("quantidade", *p.Quantidade)
	}
	if p.Destinatario != nil {
		set.add("destinatario", *p.Destinatario)
	}
	if p.Data != nil {
		set.add("data", *p.Data)
	}
	if set.empty() {
		return r.get(ctx, id)
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE produto_saidas SET "+set.sql()+" WHERE id = ?", append(set.args, id)...); err != nil {
		return model.ProdutoSaida{}, translateErr(err)
	}
	return r.get(ctx, id)
}

func (r *IssuanceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM produto_saidas WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
